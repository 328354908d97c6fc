package errors

import (
	"strings"
	"testing"

	"github.com/lat-compiler/latc/internal/token"
)

func TestStackFrame_String(t *testing.T) {
	tests := []struct {
		name     string
		frame    StackFrame
		expected string
	}{
		{
			name: "Frame with position",
			frame: StackFrame{
				FunctionName: "function [main]",
				FileName:     "test.lat",
				Position:     &token.Position{Line: 10, Column: 5},
			},
			expected: "function [main] [line: 10, column: 5]",
		},
		{
			name: "Frame without position",
			frame: StackFrame{
				FunctionName: "function [main]",
				FileName:     "test.lat",
				Position:     nil,
			},
			expected: "function [main]",
		},
		{
			name: "Frame with method description",
			frame: StackFrame{
				FunctionName: "method [Shape.area]",
				FileName:     "test.lat",
				Position:     &token.Position{Line: 42, Column: 15},
			},
			expected: "method [Shape.area] [line: 42, column: 15]",
		},
		{
			name: "Frame with class description",
			frame: StackFrame{
				FunctionName: "class [Shape]",
				FileName:     "",
				Position:     &token.Position{Line: 7, Column: 1},
			},
			expected: "class [Shape] [line: 7, column: 1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.frame.String()
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_String(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		trace    StackTrace
	}{
		{
			name:     "Empty stack trace",
			trace:    StackTrace{},
			expected: "",
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "function [main]", Position: &token.Position{Line: 1, Column: 1}},
			},
			expected: "function [main] [line: 1, column: 1]",
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "function [main]", Position: &token.Position{Line: 20, Column: 1}},
				{FunctionName: "if statement", Position: &token.Position{Line: 15, Column: 5}},
				{FunctionName: "expression", Position: &token.Position{Line: 10, Column: 3}},
			},
			expected: "expression [line: 10, column: 3]\nif statement [line: 15, column: 5]\nfunction [main] [line: 20, column: 1]",
		},
		{
			name: "Frames with and without position",
			trace: StackTrace{
				{FunctionName: "function [main]", Position: &token.Position{Line: 20, Column: 1}},
				{FunctionName: "block", Position: nil},
			},
			expected: "block\nfunction [main] [line: 20, column: 1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.trace.String()
			if result != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_Reverse(t *testing.T) {
	original := StackTrace{
		{FunctionName: "First", Position: &token.Position{Line: 1, Column: 1}},
		{FunctionName: "Second", Position: &token.Position{Line: 2, Column: 1}},
		{FunctionName: "Third", Position: &token.Position{Line: 3, Column: 1}},
	}

	reversed := original.Reverse()

	// Check that order is reversed
	if reversed[0].FunctionName != "Third" {
		t.Errorf("Expected first frame to be 'Third', got %q", reversed[0].FunctionName)
	}
	if reversed[1].FunctionName != "Second" {
		t.Errorf("Expected second frame to be 'Second', got %q", reversed[1].FunctionName)
	}
	if reversed[2].FunctionName != "First" {
		t.Errorf("Expected third frame to be 'First', got %q", reversed[2].FunctionName)
	}

	// Check that original is unchanged
	if original[0].FunctionName != "First" {
		t.Errorf("Original stack trace was modified")
	}
}

func TestStackTrace_Top(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: nil,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "function [main]", Position: &token.Position{Line: 1, Column: 1}},
			},
			expected: stringPtr("function [main]"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "function [main]", Position: &token.Position{Line: 20, Column: 1}},
				{FunctionName: "if statement", Position: &token.Position{Line: 15, Column: 5}},
				{FunctionName: "expression", Position: &token.Position{Line: 10, Column: 3}},
			},
			expected: stringPtr("expression"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := tt.trace.Top()
			if tt.expected == nil {
				if top != nil {
					t.Errorf("Expected nil, got %v", top)
				}
			} else {
				if top == nil {
					t.Errorf("Expected %q, got nil", *tt.expected)
				} else if top.FunctionName != *tt.expected {
					t.Errorf("Expected %q, got %q", *tt.expected, top.FunctionName)
				}
			}
		})
	}
}

func TestStackTrace_Bottom(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: nil,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "function [main]", Position: &token.Position{Line: 1, Column: 1}},
			},
			expected: stringPtr("function [main]"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "function [main]", Position: &token.Position{Line: 20, Column: 1}},
				{FunctionName: "if statement", Position: &token.Position{Line: 15, Column: 5}},
				{FunctionName: "expression", Position: &token.Position{Line: 10, Column: 3}},
			},
			expected: stringPtr("function [main]"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bottom := tt.trace.Bottom()
			if tt.expected == nil {
				if bottom != nil {
					t.Errorf("Expected nil, got %v", bottom)
				}
			} else {
				if bottom == nil {
					t.Errorf("Expected %q, got nil", *tt.expected)
				} else if bottom.FunctionName != *tt.expected {
					t.Errorf("Expected %q, got %q", *tt.expected, bottom.FunctionName)
				}
			}
		})
	}
}

func TestStackTrace_Depth(t *testing.T) {
	tests := []struct {
		name     string
		trace    StackTrace
		expected int
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: 0,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "function [main]"},
			},
			expected: 1,
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "function [main]"},
				{FunctionName: "if statement"},
				{FunctionName: "expression"},
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth := tt.trace.Depth()
			if depth != tt.expected {
				t.Errorf("Expected depth %d, got %d", tt.expected, depth)
			}
		})
	}
}

func TestNewStackFrame(t *testing.T) {
	pos := &token.Position{Line: 42, Column: 13}
	frame := NewStackFrame("function [TestFunc]", "test.lat", pos)

	if frame.FunctionName != "function [TestFunc]" {
		t.Errorf("Expected FunctionName 'function [TestFunc]', got %q", frame.FunctionName)
	}
	if frame.FileName != "test.lat" {
		t.Errorf("Expected FileName 'test.lat', got %q", frame.FileName)
	}
	if frame.Position != pos {
		t.Errorf("Expected position %v, got %v", pos, frame.Position)
	}
}

func TestNewStackTrace(t *testing.T) {
	trace := NewStackTrace()

	if trace == nil {
		t.Error("NewStackTrace returned nil")
	}
	if len(trace) != 0 {
		t.Errorf("Expected empty stack trace, got length %d", len(trace))
	}
}

func TestStackTrace_RealWorldScenario(t *testing.T) {
	// Simulate a parse environment: function main -> if statement -> expression
	trace := StackTrace{
		{FunctionName: "function [main]", FileName: "main.lat", Position: &token.Position{Line: 50, Column: 1}},
		{FunctionName: "if statement", FileName: "main.lat", Position: &token.Position{Line: 30, Column: 5}},
		{FunctionName: "expression", FileName: "main.lat", Position: &token.Position{Line: 10, Column: 3}},
	}

	// Test string representation (innermost first)
	expected := "expression [line: 10, column: 3]\nif statement [line: 30, column: 5]\nfunction [main] [line: 50, column: 1]"
	result := trace.String()
	if result != expected {
		t.Errorf("Stack trace string doesn't match.\nExpected:\n%s\nGot:\n%s", expected, result)
	}

	// Test depth
	if trace.Depth() != 3 {
		t.Errorf("Expected depth 3, got %d", trace.Depth())
	}

	// Test top (innermost production)
	top := trace.Top()
	if top == nil || top.FunctionName != "expression" {
		t.Errorf("Expected top to be expression, got %v", top)
	}

	// Test bottom (outermost production)
	bottom := trace.Bottom()
	if bottom == nil || bottom.FunctionName != "function [main]" {
		t.Errorf("Expected bottom to be function [main], got %v", bottom)
	}
}

func TestStackTrace_StringFormatMatchesSpec(t *testing.T) {
	// Innermost-first rendering, matching spec.md's environment-stack trail.
	trace := StackTrace{
		{FunctionName: "function [main]", Position: &token.Position{Line: 8, Column: 4}},
		{FunctionName: "if statement", Position: &token.Position{Line: 3, Column: 20}},
	}

	result := trace.String()
	lines := strings.Split(result, "\n")

	if lines[0] != "if statement [line: 3, column: 20]" {
		t.Errorf("First line doesn't match expected format: %q", lines[0])
	}
	if lines[1] != "function [main] [line: 8, column: 4]" {
		t.Errorf("Second line doesn't match expected format: %q", lines[1])
	}
}

// Helper function for tests
func stringPtr(s string) *string {
	return &s
}
