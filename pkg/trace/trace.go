// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package trace prints CAN frames as they pass a FrameStream. Tracing
// is opt-in per bus through environment variables:
//
//	CANDB_TRACE_CAN_<BUS>=*           trace every frame
//	CANDB_TRACE_CAN_<BUS>=0x100,0x1f4 trace the listed frame ids
package trace

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// GetTraceEnv reads a trace filter from the named environment
// variable: a wildcard flag, or the set of traced frame ids.
func GetTraceEnv(envName string) (bool, map[uint32]bool) {
	envName = strings.ToUpper(envName)
	filter := os.Getenv(envName)
	if filter == "" {
		return false, nil
	}

	if filter == "*" {
		slog.Debug("    <wildcard> (all frames)")
		return true, nil
	}

	Filter := make(map[uint32]bool)
	ids := strings.Split(filter, ",")
	for _, idStr := range ids {
		id, err := strconv.ParseInt(idStr, 0, 32)
		if err == nil && id > 0 {
			id32 := uint32(id)
			Filter[id32] = true
			slog.Debug(fmt.Sprintf("    %02x", id32))
		}
	}
	return false, Filter
}
