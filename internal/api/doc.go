// Package api implements the HTTP client for the catalog server's REST
// resources.
//
// # Resources
//
//	POST /api/auth            login, token in response body, no auth required
//	POST /api/users           register, token in x-auth-token response header
//	     /api/categories      list / get / create / update / delete
//	     /api/library-items   list / get / create / update / delete
//
// Every request carries the session token in the x-auth-token header when one
// is stored. The token is read per request, so a login or logout affects
// subsequent requests only.
//
// # Errors
//
// Non-2xx responses become [RequestError] values carrying the transport
// status and the body verbatim. Callers map status 400 to a user-visible
// validation message and any other status to a generic failure message via
// [UserMessage]; no retry happens anywhere in the client.
package api
