package utils

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/bizclock/bizclock/utils/log"
)

// InstanceConfig is the process-wide configuration, populated by the
// start command.
var InstanceConfig BizConfig

func init() {
	InstanceConfig.Timezone = time.UTC
}

// ClickHouseSetting configures the optional ClickHouse-backed shift
// store. An empty Addr means calendar data comes from the static
// schedule definitions instead.
type ClickHouseSetting struct {
	Addr     string
	Database string
	Table    string
	Username string
	Password string
}

// BizConfig is the server configuration read from the YAML config
// file.
type BizConfig struct {
	ListenPort    string
	Timezone      *time.Location
	LookaheadDays int
	CacheTTL      time.Duration
	ClickHouse    ClickHouseSetting
	Schedules     map[string]interface{}
	StartTime     time.Time
}

// ParseConfig reads a YAML document into a BizConfig and applies
// defaults.
func ParseConfig(data []byte) (*BizConfig, error) {
	var aux struct {
		ListenPort    string `yaml:"listen_port"`
		Timezone      string `yaml:"timezone"`
		LogLevel      string `yaml:"log_level"`
		LookaheadDays int    `yaml:"lookahead_days"`
		CacheTTL      int    `yaml:"cache_ttl"`
		ClickHouse    struct {
			Addr     string `yaml:"addr"`
			Database string `yaml:"database"`
			Table    string `yaml:"table"`
			Username string `yaml:"username"`
			Password string `yaml:"password"`
		} `yaml:"clickhouse"`
		Schedules map[string]interface{} `yaml:"schedules"`
	}

	if err := yaml.Unmarshal(data, &aux); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	m := &BizConfig{}

	if aux.ListenPort == "" {
		return nil, fmt.Errorf("invalid listen port")
	}
	m.ListenPort = fmt.Sprintf(":%v", aux.ListenPort)

	// Giving "" to LoadLocation will be UTC anyway, which is our default too.
	var err error
	m.Timezone, err = time.LoadLocation(aux.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q", aux.Timezone)
	}

	if aux.LookaheadDays < 0 {
		return nil, fmt.Errorf("lookahead_days must not be negative: got=%d", aux.LookaheadDays)
	}
	m.LookaheadDays = aux.LookaheadDays

	if aux.CacheTTL > 0 {
		m.CacheTTL = time.Duration(aux.CacheTTL) * time.Second
	}

	if aux.LogLevel != "" {
		switch strings.ToLower(aux.LogLevel) {
		case "fatal":
			log.SetLevel(log.FATAL)
		case "error":
			log.SetLevel(log.ERROR)
		case "warning":
			log.SetLevel(log.WARNING)
		case "debug":
			log.SetLevel(log.DEBUG)
		case "info":
			fallthrough
		default:
			log.SetLevel(log.INFO)
		}
	}

	m.ClickHouse = ClickHouseSetting{
		Addr:     aux.ClickHouse.Addr,
		Database: aux.ClickHouse.Database,
		Table:    aux.ClickHouse.Table,
		Username: aux.ClickHouse.Username,
		Password: aux.ClickHouse.Password,
	}
	m.Schedules = aux.Schedules

	return m, nil
}
