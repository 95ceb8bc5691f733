package factory

import (
	"context"
	"testing"

	"github.com/biolens-ai/bioradar/pkg/config"
)

func TestNewClient_Gradio(t *testing.T) {
	client, err := NewClient(context.Background(), &config.InferenceConfig{
		Provider: "gradio",
		Gradio:   config.GradioConfig{BaseURL: "https://example.hf.space"},
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("NewClient() returned nil client")
	}
}

func TestNewClient_DefaultFallback(t *testing.T) {
	// provider 未配置但给了 gradio 地址时回退到 gradio
	client, err := NewClient(context.Background(), &config.InferenceConfig{
		Gradio: config.GradioConfig{BaseURL: "https://example.hf.space"},
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("NewClient() returned nil client")
	}
}

func TestNewClient_Unconfigured(t *testing.T) {
	if _, err := NewClient(context.Background(), &config.InferenceConfig{}); err == nil {
		t.Fatal("NewClient() expected error when nothing is configured")
	}
}

func TestNewClient_UnknownProvider(t *testing.T) {
	if _, err := NewClient(context.Background(), &config.InferenceConfig{Provider: "bedrock"}); err == nil {
		t.Fatal("NewClient() expected error for unknown provider")
	}
}

func TestNewClient_GradioMissingURL(t *testing.T) {
	if _, err := NewClient(context.Background(), &config.InferenceConfig{Provider: "gradio"}); err == nil {
		t.Fatal("NewClient() expected error when gradio base url is missing")
	}
}
