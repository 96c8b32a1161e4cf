// Focusgraph - Pomodoro Session Analytics and Productivity Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/focusgraph

package validation

import (
	"strings"
	"testing"
)

type createSessionProbe struct {
	SessionType string `validate:"required,sessiontype"`
	Duration    int    `validate:"required,min=1,max=180"`
	Efficiency  int    `validate:"omitempty,min=1,max=5"`
}

type statsProbe struct {
	Granularity string `validate:"omitempty,granularity"`
	Days        int    `validate:"omitempty,min=1,max=365"`
}

func TestValidateStructSessionType(t *testing.T) {
	tests := []struct {
		name    string
		probe   createSessionProbe
		wantErr bool
	}{
		{"valid work", createSessionProbe{SessionType: "work", Duration: 25}, false},
		{"valid break", createSessionProbe{SessionType: "break", Duration: 5}, false},
		{"valid long break", createSessionProbe{SessionType: "longBreak", Duration: 15}, false},
		{"unknown type", createSessionProbe{SessionType: "nap", Duration: 25}, true},
		{"missing type", createSessionProbe{Duration: 25}, true},
		{"zero duration", createSessionProbe{SessionType: "work"}, true},
		{"over max duration", createSessionProbe{SessionType: "work", Duration: 500}, true},
		{"efficiency in range", createSessionProbe{SessionType: "work", Duration: 25, Efficiency: 5}, false},
		{"efficiency out of range", createSessionProbe{SessionType: "work", Duration: 25, Efficiency: 6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.probe)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateStructGranularity(t *testing.T) {
	if err := ValidateStruct(&statsProbe{Granularity: "week", Days: 30}); err != nil {
		t.Errorf("valid granularity rejected: %v", err)
	}
	if err := ValidateStruct(&statsProbe{Granularity: "fortnight"}); err == nil {
		t.Error("unknown granularity accepted")
	}
	// Empty granularity is allowed; handlers default it.
	if err := ValidateStruct(&statsProbe{}); err != nil {
		t.Errorf("empty probe rejected: %v", err)
	}
}

func TestToAPIErrorSingleField(t *testing.T) {
	err := ValidateStruct(&createSessionProbe{SessionType: "nap", Duration: 25})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %s, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "work, break, longBreak") {
		t.Errorf("message %q does not name the allowed types", apiErr.Message)
	}
	if apiErr.Details["field"] != "SessionType" {
		t.Errorf("Details.field = %v, want SessionType", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultipleFields(t *testing.T) {
	err := ValidateStruct(&createSessionProbe{SessionType: "nap", Duration: 500})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("error count = %d, want 2", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details.fields has type %T", apiErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("fields count = %d, want 2", len(fields))
	}
}
