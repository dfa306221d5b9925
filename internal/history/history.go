// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tfctl/awsctl/internal/cacheutil"
	"github.com/tfctl/awsctl/internal/log"
)

// Slot names one of the two recorded invocations kept per command.
type Slot string

const (
	Last     Slot = "last"
	Previous Slot = "previous"
)

// ErrNotFound is returned when no invocation has been recorded for a slot.
var ErrNotFound = errors.New("no recorded invocation")

// Entry is one recorded command invocation.
type Entry struct {
	ID        string          `json:"id"`
	Service   string          `json:"service"`
	Command   string          `json:"command"`
	API       string          `json:"api"`
	Region    string          `json:"region,omitempty"`
	Time      time.Time       `json:"time"`
	Request   json.RawMessage `json:"request,omitempty"`
	Response  json.RawMessage `json:"response,omitempty"`
	NextToken string          `json:"nextToken,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// NewEntry starts an entry for the command with a fresh id and timestamp.
func NewEntry(service, command, api string) *Entry {
	return &Entry{
		ID:      uuid.NewString(),
		Service: service,
		Command: command,
		API:     api,
		Time:    time.Now().UTC(),
	}
}

// Record stores the entry as the command's last invocation, moving the
// prior last invocation into the previous slot.
func Record(e *Entry) error {
	if e == nil {
		return nil
	}
	subdirs := subdirs(e.Service)

	if prior, ok := cacheutil.Read(subdirs, key(e.Command, Last)); ok {
		if err := cacheutil.Write(subdirs, key(e.Command, Previous), prior.Data); err != nil {
			return err
		}
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}
	if err := cacheutil.Write(subdirs, key(e.Command, Last), data); err != nil {
		return err
	}
	log.Debugf("history recorded: service=%s command=%s id=%s", e.Service, e.Command, e.ID)
	return nil
}

// Load returns the recorded entry for the command's slot.
func Load(service, command string, slot Slot) (*Entry, error) {
	raw, ok := cacheutil.Read(subdirs(service), key(command, slot))
	if !ok {
		return nil, fmt.Errorf("%w: %s %s (%s)", ErrNotFound, service, command, slot)
	}

	var e Entry
	if err := json.Unmarshal(raw.Data, &e); err != nil {
		return nil, fmt.Errorf("failed to decode history entry: %w", err)
	}
	return &e, nil
}

// Purge removes recorded invocations older than hours. Zero or less clears
// every recorded invocation.
func Purge(hours int) error {
	if hours <= 0 {
		return cacheutil.Clear("history")
	}
	return cacheutil.Purge(hours, "history")
}

func subdirs(service string) []string {
	return []string{"history", service}
}

func key(command string, slot Slot) string {
	return command + "/" + string(slot)
}
