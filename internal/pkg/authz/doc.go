// Package authz defines the authorization vocabulary and Casbin enforcer
// shared by controllers/services.
//
// Design goals:
//   - Make authorization intent explicit: (subject, object, action)
//   - Keep controllers simple: build object scope (self/any) and call Enforce()
//   - Avoid scattering role checks (e.g. role==admin) across handlers
//
// Object naming convention:
//
//	<resource>:<scope>
//
// Examples:
//
//	user:self, user:any
//	wan:any, peer:any, subnet:any, service:any, job:any
//
// Actions are intentionally stringly-typed to keep Casbin policy readable.
package authz
