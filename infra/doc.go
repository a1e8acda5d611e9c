// Package infra contains technical adapters: file ingestion, the zerolog
// logger, the MQTT client and the reporters. These packages depend only on
// the interfaces defined in the core packages.
package infra
