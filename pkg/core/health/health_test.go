package health

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewChecker(t *testing.T) {
	checker := NewChecker("test-checker", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: "test passed"}
	})

	if checker.Name() != "test-checker" {
		t.Errorf("Name() = %v, want test-checker", checker.Name())
	}
	if result := checker.Check(context.Background()); result.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", result.Status)
	}
}

func TestRegistryCheck(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry("1.0.0")
			for i, s := range tt.statuses {
				status := s
				r.RegisterFunc(string(rune('a'+i)), func(ctx context.Context) CheckResult {
					return CheckResult{Status: status}
				})
			}

			report := r.Check(context.Background())
			if report.Status != tt.want {
				t.Errorf("Status = %v, want %v", report.Status, tt.want)
			}
			if len(report.Checks) != len(tt.statuses) {
				t.Fatalf("len(Checks) = %d, want %d", len(report.Checks), len(tt.statuses))
			}
			for i, c := range report.Checks {
				if want := string(rune('a' + i)); c.Name != want {
					t.Errorf("Checks[%d].Name = %q, want %q (sorted, defaulted)", i, c.Name, want)
				}
			}
		})
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := NewRegistry("1.0.0")
	r.RegisterFunc("x", func(ctx context.Context) CheckResult { return Unhealthy("x", errors.New("bad")) })
	r.RegisterFunc("x", func(ctx context.Context) CheckResult { return Healthy("x", "ok") })

	report := r.Check(context.Background())
	if len(report.Checks) != 1 || report.Status != StatusHealthy {
		t.Errorf("report = %+v, want one healthy check", report)
	}
}

func TestDirWritable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	result := DirWritable("data_dir", dir).Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("DirWritable() = %+v, want healthy", result)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory was not created: %v", err)
	}

	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	result = DirWritable("blocked", filepath.Join(file, "sub")).Check(context.Background())
	if result.Status != StatusUnhealthy {
		t.Errorf("DirWritable() under a file = %+v, want unhealthy", result)
	}
}
