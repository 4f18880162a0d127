package shoutcast

import (
	"io"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/go-mp3"
	"github.com/hajimehoshi/oto"
	"github.com/romantomjak/shoutcast"

	"radio-box-ng/business/entity"
	"radio-box-ng/pkg/logger"
)

type Config struct {
	BufferSize int
}

const defaultBufferSize = 4096

// MP3Shoutcast streams a SHOUTcast/Icecast MP3 source to the audio
// output. Software volume is applied to the decoded PCM samples, scaled
// from the device's 0..21 range.
type MP3Shoutcast struct {
	cfg              *Config
	log              *logger.Zerolog
	stream           *shoutcast.Stream
	decoder          *mp3.Decoder
	player           *oto.Player
	wgPlaying        sync.WaitGroup
	isPlay           bool
	volume           int32
	metadataCallback entity.MetadataCallback
	endedCallback    entity.StreamEndedCallback
}

func NewMP3Shoutcast(cfg *Config, log *logger.Zerolog) *MP3Shoutcast {
	if cfg.BufferSize == 0 {
		cfg.BufferSize = defaultBufferSize
	}
	return &MP3Shoutcast{
		cfg:    cfg,
		log:    log,
		volume: entity.VolumeMax,
	}
}

func (s *MP3Shoutcast) Play(streamURL string) error {
	var err error
	s.stream, err = shoutcast.Open(streamURL)
	if err != nil {
		return err
	}

	s.stream.MetadataCallbackFunc = s.titleCallback

	if s.decoder, err = mp3.NewDecoder(s.stream); err != nil {
		_ = s.stream.Close()
		return err
	}

	s.log.Debug().Msgf("stream open: %s quality: %dKbps rate: %d", s.stream.Name, s.stream.Bitrate, s.decoder.SampleRate())

	var playerContext *oto.Context
	if playerContext, err = oto.NewContext(s.decoder.SampleRate(), 2, 2, s.cfg.BufferSize); err != nil {
		_ = s.stream.Close()
		return err
	}

	s.player = playerContext.NewPlayer()

	s.isPlay = true
	s.wgPlaying = sync.WaitGroup{}
	s.wgPlaying.Add(1)

	go func() {
		var playErr error

		defer func() {
			s.log.Debug().Msgf("player finished error: %v", playErr)

			s.isPlay = false
			s.wgPlaying.Done()

			if s.stream != nil {
				if err := s.stream.Close(); err != nil {
					s.log.Error().Msgf("failed to close stream: %v", err)
				}
			}

			if s.player != nil {
				if err := s.player.Close(); err != nil {
					s.log.Error().Msgf("failed to close player: %v", err)
				}
			}

			if playerContext != nil {
				if err := playerContext.Close(); err != nil {
					s.log.Error().Msgf("failed to close player context: %v", err)
				}
			}

			// wgPlaying is released before this point, so a Stop()
			// issued from inside the callback cannot deadlock.
			if playErr != nil && s.endedCallback != nil {
				s.endedCallback()
			}
		}()

		s.emitStreamInfo(streamURL)

		for s.isPlay {
			var data = make([]byte, 512)

			n, readErr := s.decoder.Read(data)
			if readErr == io.EOF {
				playErr = io.ErrUnexpectedEOF
				break
			} else if readErr != nil {
				s.log.Error().Msgf("failed to read data from decoder: %v", readErr)
				playErr = readErr
				break
			}

			s.applyVolume(data[:n])

			if _, playErr = s.player.Write(data[:n]); playErr != nil {
				s.log.Error().Msgf("failed to write decoded data: %v", playErr)
				break
			}
		}
	}()

	return nil
}

func (s *MP3Shoutcast) Stop() {
	if !s.isPlay {
		return
	}
	s.isPlay = false
	s.wgPlaying.Wait()
}

func (s *MP3Shoutcast) SetVolume(level int) {
	if level < entity.VolumeMin {
		level = entity.VolumeMin
	}
	if level > entity.VolumeMax {
		level = entity.VolumeMax
	}
	atomic.StoreInt32(&s.volume, int32(level))
}

func (s *MP3Shoutcast) SetMetadataCallback(cb entity.MetadataCallback) {
	s.metadataCallback = cb
}

func (s *MP3Shoutcast) SetStreamEndedCallback(cb entity.StreamEndedCallback) {
	s.endedCallback = cb
}

// applyVolume scales 16-bit little-endian PCM in place.
func (s *MP3Shoutcast) applyVolume(data []byte) {
	level := atomic.LoadInt32(&s.volume)
	if level >= entity.VolumeMax {
		return
	}
	if level <= entity.VolumeMin {
		for i := range data {
			data[i] = 0
		}
		return
	}

	gain := float64(level) / float64(entity.VolumeMax)
	for i := 0; i+1 < len(data); i += 2 {
		sample := int16(uint16(data[i]) | uint16(data[i+1])<<8)
		scaled := int16(float64(sample) * gain)
		data[i] = byte(uint16(scaled))
		data[i+1] = byte(uint16(scaled) >> 8)
	}
}

func (s *MP3Shoutcast) titleCallback(m *shoutcast.Metadata) {
	s.log.Debug().Msgf("now listening to: %s", m.StreamTitle)
	s.emit(entity.MetaTitle, m.StreamTitle)
}

// emitStreamInfo forwards the ICY headers parsed at connect time.
func (s *MP3Shoutcast) emitStreamInfo(streamURL string) {
	s.emit(entity.MetaStationName, s.stream.Name)
	s.emit(entity.MetaGenre, s.stream.Genre)
	if s.stream.Bitrate > 0 {
		s.emit(entity.MetaBitrate, strconv.Itoa(s.stream.Bitrate))
	}
	s.emit(entity.MetaURL, streamURL)
	if u, err := url.Parse(streamURL); err == nil {
		s.emit(entity.MetaHost, u.Host)
	}
}

func (s *MP3Shoutcast) emit(kind entity.MetadataKind, value string) {
	if s.metadataCallback == nil || value == "" {
		return
	}
	s.metadataCallback(entity.MetadataEvent{Kind: kind, Value: value})
}
