// Package logger provides structured logging for the systolic simulator
// using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying a run id so the steps of one container
// can be correlated.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "console"
//
// # Usage
//
//	log := logger.NewDefault("systolic").WithComponent("container")
//	log.Debug("step completed", logger.Fields(logger.FieldStep, 3))
package logger
