// Package preview serves a directory of markup documents over HTTP while
// they are being edited.
//
// Every *.json file in the directory is a page document (see package page).
// GET / lists the documents and GET /p/{name} renders one. With live reload
// enabled the server polls the directory and tells connected browsers to
// reload over a WebSocket whenever a document changes, or shows the decode
// error when a change breaks the document.
//
// Renders are counted and timed with Prometheus metrics and traced with
// OpenTelemetry spans.
package preview
