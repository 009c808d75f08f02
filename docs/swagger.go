// Package docs Spatial Alert Engine API.
//
// Alerting service for the marine protected area monitoring platform.
// Evaluates alert rules against satellite bleaching products, AIS vessel
// tracks, sensor readings and citizen reef observations, persists the
// alerts that fire and delivers them over realtime, email and push channels.
//
// Core capabilities:
// - On-demand, scheduled and stream-triggered rule evaluation
// - Batch point-in-area containment checks
// - Protected area boundary review with change classification
// - Simplified boundary tiers for map rendering
// - Live alert feed over websocket (/ws/alerts)
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
