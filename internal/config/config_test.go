package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Thread.StopTimeout != 5*time.Second {
		t.Errorf("StopTimeout = %v, want 5s", cfg.Thread.StopTimeout)
	}
	if cfg.Thread.DefaultPriority != 5 {
		t.Errorf("DefaultPriority = %d, want 5", cfg.Thread.DefaultPriority)
	}
	if cfg.HashMap.InitialSlots != 101 {
		t.Errorf("InitialSlots = %d, want 101", cfg.HashMap.InitialSlots)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) = %v, want nil", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "default is valid",
			mutate: func(*Config) {},
		},
		{
			name:   "negative stop timeout waits forever and is valid",
			mutate: func(c *Config) { c.Thread.StopTimeout = -1 },
		},
		{
			name:    "zero stop timeout",
			mutate:  func(c *Config) { c.Thread.StopTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "priority too high",
			mutate:  func(c *Config) { c.Thread.DefaultPriority = 11 },
			wantErr: true,
		},
		{
			name:    "priority negative",
			mutate:  func(c *Config) { c.Thread.DefaultPriority = -1 },
			wantErr: true,
		},
		{
			name:    "zero slots",
			mutate:  func(c *Config) { c.HashMap.InitialSlots = 0 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: true,
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
		},
		{
			name:   "console format ok",
			mutate: func(c *Config) { c.Log.Format = "console" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Verify(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
