// Package faults defines the error markers shared by the analysis pipeline.
//
// Stages wrap failures with one of the exported sentinels so the CLI and the
// results store can classify a run outcome without parsing messages. An
// empty time window is not a fault and never produces one of these errors.
package faults
