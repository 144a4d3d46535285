package main

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	HistorySize     int
	ZoomStep        float64
	StartColor      color.RGBA
	ShowGrid        bool
	PixelsPerColumn int
	SystemClipboard bool
	ExportDirectory string
	LogFile         string
	LogLevel        string
}

func defaultConfig() *Config {
	return &Config{
		HistorySize:     defaultHistorySize,
		ZoomStep:        defaultZoomStep,
		StartColor:      defaultPaintColor,
		ShowGrid:        true,
		PixelsPerColumn: defaultPixelsPerColumn,
		LogLevel:        "info",
	}
}

// configPath returns $INFINIPIX_CONFIG, or ~/.infinipixrc.
func configPath() string {
	if p := os.Getenv("INFINIPIX_CONFIG"); p != "" {
		return p
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".infinipixrc")
}

// loadConfig reads the rc file. A missing file yields the defaults; bad
// values keep their default and are reported in the returned error.
func loadConfig() (*Config, error) {
	config := defaultConfig()
	path := configPath()
	if path == "" {
		return config, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	return config, parseConfig(config, bufio.NewScanner(file))
}

func parseConfig(config *Config, scanner *bufio.Scanner) error {
	var problems []string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := config.set(strings.ToLower(key), value); err != nil {
			problems = append(problems, fmt.Sprintf("line %d: %v", lineNo, err))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) set(key, value string) error {
	switch key {
	case "history_size", "historysize", "undo_levels":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid history_size %q", value)
		}
		c.HistorySize = n
	case "zoom_step", "zoomstep":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 1 {
			return fmt.Errorf("invalid zoom_step %q", value)
		}
		c.ZoomStep = f
	case "start_color", "startcolor", "color":
		col, err := parseHexColor(value)
		if err != nil {
			return err
		}
		c.StartColor = col
	case "show_grid", "showgrid", "grid":
		c.ShowGrid = strings.ToLower(value) == "true"
	case "pixels_per_column", "pixelspercolumn":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid pixels_per_column %q", value)
		}
		c.PixelsPerColumn = n
	case "system_clipboard", "systemclipboard":
		c.SystemClipboard = strings.ToLower(value) == "true"
	case "export_directory", "exportdirectory", "exportdir":
		c.ExportDirectory = expandPath(value)
	case "log_file", "logfile":
		c.LogFile = expandPath(value)
	case "log_level", "loglevel":
		c.LogLevel = value
	}
	return nil
}

func expandPath(value string) string {
	if strings.HasPrefix(value, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetExportPath(filename string) (string, error) {
	if c.ExportDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.ExportDirectory, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	return filepath.Join(c.ExportDirectory, filename), nil
}
