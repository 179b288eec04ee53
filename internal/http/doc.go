// Package http provides the HTML handlers and middleware for the event
// registration admin interface.
//
// The router exposes the following endpoints:
//   - GET /: redirects to /events.
//   - GET /events, POST /events: list events with their registration counts,
//     create an event from a form submission.
//   - GET /events/new, GET /events/edit/{id}: blank and populated event forms.
//   - POST /events/update/{id}: overwrite the event with the path identifier.
//   - GET /events/delete/{id}: delete the event and its registrations.
//   - GET /registrations, POST /registrations, GET /registrations/new,
//     GET /registrations/edit/{id}, POST /registrations/update/{id},
//     GET /registrations/delete/{id}: the same lifecycle for registrations.
//   - GET /healthz: reports database reachability as plain text.
//
// Successful mutations answer 302 to the collection URL. Validation failures
// re-render the submitted form with status 200. Unknown or malformed
// identifiers render the error view with status 404.
package http
