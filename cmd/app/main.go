package main

import (
	"parish/config"
	"parish/di"
	"parish/shared/logger"
)

// @title Parish Sacrament Appointment API
// @version 1.0
// @description Backend service for scheduling parish sacrament appointments.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
