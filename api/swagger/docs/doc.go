// Package docs NexusPointWG API Server API.
//
// NexusPointWG is a web server for WireGuard.
//
//	Schemes: http, https
//	Host: localhost:8080
//	BasePath: /api/v1
//	Version: 1.0.0
//	License: MIT https://opensource.org/licenses/MIT
//	Contact: NexusPointWG Team
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
