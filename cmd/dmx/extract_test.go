package main

import (
	"reflect"
	"testing"
)

func TestCollectUserIDs(t *testing.T) {
	tests := []struct {
		name   string
		single string
		multi  string
		want   []string
	}{
		{"single only", "100", "", []string{"100"}},
		{"multi only", "", "100,200", []string{"100", "200"}},
		{"merged, single first", "300", "100,200", []string{"300", "100", "200"}},
		{"dedup keeps first position", "100", "200,100", []string{"100", "200"}},
		{"whitespace trimmed", "", " 100 , 200 ", []string{"100", "200"}},
		{"empty entries dropped", "", "100,,200,", []string{"100", "200"}},
		{"nothing", "", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collectUserIDs(tt.single, tt.multi); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("collectUserIDs(%q, %q) = %v, want %v", tt.single, tt.multi, got, tt.want)
			}
		})
	}
}

func TestResolveFormatsKeepsRequestOrder(t *testing.T) {
	renderers, err := resolveFormats("md,txt,json", []string{"csv"})
	if err != nil {
		t.Fatalf("resolveFormats: %v", err)
	}
	var got []string
	for _, r := range renderers {
		got = append(got, r.Ext())
	}
	want := []string{"md", "txt", "json"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("format order = %v, want %v", got, want)
	}
}

func TestResolveFormatsDedup(t *testing.T) {
	renderers, err := resolveFormats("txt,TXT, txt ,json", nil)
	if err != nil {
		t.Fatalf("resolveFormats: %v", err)
	}
	if len(renderers) != 2 || renderers[0].Ext() != "txt" || renderers[1].Ext() != "json" {
		var got []string
		for _, r := range renderers {
			got = append(got, r.Ext())
		}
		t.Errorf("formats = %v, want [txt json]", got)
	}
}

func TestResolveFormatsDefaults(t *testing.T) {
	renderers, err := resolveFormats("", []string{"csv", "html"})
	if err != nil {
		t.Fatalf("resolveFormats: %v", err)
	}
	if len(renderers) != 2 || renderers[0].Ext() != "csv" || renderers[1].Ext() != "html" {
		t.Errorf("defaults not honored in order")
	}
}

func TestResolveFormatsRejectsUnknown(t *testing.T) {
	if _, err := resolveFormats("txt,pdf", nil); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := resolveFormats("", nil); err == nil {
		t.Error("expected error when nothing resolves")
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := sanitizeFilename(`a/b\c:d e?`); got != "a_b_c_d_e_" {
		t.Errorf("sanitizeFilename = %q", got)
	}
}

func TestPreviewCmdSurface(t *testing.T) {
	cmd := previewCmd()
	if cmd.Use != "preview <messageID>" {
		t.Errorf("Use = %q", cmd.Use)
	}
	for _, flag := range []string{"depth", "width", "query"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("missing --%s flag", flag)
		}
	}
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("preview should require a message ID argument")
	}
	if err := cmd.Args(cmd, []string{"123"}); err != nil {
		t.Errorf("single argument should be accepted: %v", err)
	}
}
