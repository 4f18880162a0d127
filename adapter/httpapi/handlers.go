package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"radio-box-ng/business/entity"
)

// Handlers validate parameters at the boundary and delegate to the
// controller; stream failures are reported in /api/status, not here.

func (s *Server) Play(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.String(http.StatusBadRequest, "missing url parameter")
		return
	}

	if err := s.radio.Start(url); err != nil {
		s.log.Error().Msgf("play %s: %v", url, err)
	}
	c.String(http.StatusOK, "OK")
}

func (s *Server) StartLast(c *gin.Context) {
	if err := s.radio.StartLast(); err != nil {
		s.log.Debug().Msgf("start_last: %v", err)
	}
	c.String(http.StatusOK, "OK")
}

func (s *Server) Stop(c *gin.Context) {
	s.radio.Stop()
	c.String(http.StatusOK, "OK")
}

func (s *Server) Volume(c *gin.Context) {
	raw := c.Query("level")
	if raw == "" {
		c.String(http.StatusBadRequest, "missing level parameter")
		return
	}
	level, err := strconv.Atoi(raw)
	if err != nil {
		c.String(http.StatusBadRequest, "level must be an integer")
		return
	}
	if err := s.radio.SetVolume(level); err != nil {
		c.String(http.StatusBadRequest, "level must be in 0..21")
		return
	}
	c.String(http.StatusOK, "OK")
}

func (s *Server) SleepTimer(c *gin.Context) {
	raw := c.Query("minutes")
	if raw == "" {
		c.String(http.StatusBadRequest, "missing minutes parameter")
		return
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		c.String(http.StatusBadRequest, "minutes must be an integer")
		return
	}
	s.radio.ArmSleepTimer(minutes)
	c.String(http.StatusOK, "OK")
}

func (s *Server) Status(c *gin.Context) {
	c.JSON(http.StatusOK, s.radio.Status())
}

func (s *Server) Stations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stations": s.catalog.All()})
}

func (s *Server) AddStation(c *gin.Context) {
	name := c.Query("name")
	url := c.Query("url")
	genre := c.Query("genre")
	if name == "" || url == "" || genre == "" {
		c.String(http.StatusBadRequest, "missing name, url or genre parameter")
		return
	}

	if err := s.catalog.Add(entity.Station{Name: name, URL: url, Genre: genre}); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.String(http.StatusOK, "station added")
}

func (s *Server) RemoveStation(c *gin.Context) {
	raw := c.Query("index")
	if raw == "" {
		c.String(http.StatusBadRequest, "missing index parameter")
		return
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		c.String(http.StatusBadRequest, "index must be an integer")
		return
	}
	if err := s.catalog.RemoveAt(index); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.String(http.StatusOK, "station removed")
}

func (s *Server) SaveConfig(c *gin.Context) {
	ssid := c.Query("ssid")
	password := c.Query("password")
	if ssid == "" || password == "" {
		c.String(http.StatusBadRequest, "missing ssid or password parameter")
		return
	}

	var autoPlay *bool
	if raw := c.Query("autoplay"); raw != "" {
		v := raw == "1" || raw == "true" || raw == "on"
		autoPlay = &v
	}

	if err := s.radio.UpdateNetworkConfig(ssid, password, autoPlay); err != nil {
		s.log.Error().Msgf("failed to save config: %v", err)
	}
	c.String(http.StatusOK, "configuration saved, restarting")

	if s.restart != nil {
		go s.restart()
	}
}
