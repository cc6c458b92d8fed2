// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"fmt"
	"strings"
)

// DecodeConfig parses a `key=value;...` stream configuration string.
// The parameters type=can, schema=fbs and interface=stream are
// required; unknown parameters are rejected.
func DecodeConfig(config string) (map[string]*string, error) {
	if config == "" {
		return nil, fmt.Errorf("stream config is empty")
	}

	configMap := make(map[string]*string)

	parts := strings.FieldsFunc(config, func(r rune) bool {
		return r == ';' || r == ' '
	})

	for _, part := range parts {
		if kv := strings.SplitN(part, "=", 2); len(kv) == 2 {
			v := strings.TrimSpace(kv[1])
			configMap[strings.TrimSpace(kv[0])] = &v
		}
	}
	// required parameters.
	var Guard = []string{"interface", "type", "schema"}
	for _, key := range Guard {
		if param, ok := configMap[key]; ok {
			switch key {
			case "type":
				if *param != "can" {
					return nil, fmt.Errorf("unsupported type: %s", *param)
				}
			case "interface":
				if *param != "stream" {
					return nil, fmt.Errorf("wrong interface: %s", *param)
				}
			case "schema":
				if *param != "fbs" {
					return nil, fmt.Errorf("wrong schema: %s", *param)
				}
			}
		} else {
			return nil, fmt.Errorf("missing required config parameter: %s", key)
		}
	}
	// all possible parameters.
	var Options = []string{"type", "schema", "interface", "bus", "bus_id", "node_id", "interface_id"}
	for key := range configMap {
		found := false
		for _, opt := range Options {
			if key == opt {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unexpected config parameter: %s", key)
		}
	}
	return configMap, nil
}
