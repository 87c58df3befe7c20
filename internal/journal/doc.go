// Package journal observes fight dispatch passes. Recorder keeps a durable
// journal of them and Tracer mirrors them as OpenTelemetry spans.
package journal
