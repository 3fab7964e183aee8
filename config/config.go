package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"charity_dao/contract/dao"

	"github.com/joho/godotenv"
)

// ConfigFilename is the name of the config file inside the data directory.
const ConfigFilename = "config.json"

// EnvFilename is loaded (if present) before TREASURY_* variables are read.
const EnvFilename = ".env"

// Local holds the per-node settings of the treasury daemon.
type Local struct {
	// VotingPeriod is how long a proposal accepts votes.
	VotingPeriod time.Duration
	// MinStake is the decimal stake (in currency units) that makes an account a stakeholder.
	MinStake string

	// StateBackend is "memory", "file" or "pebble".
	StateBackend string
	DataDir      string
	// JournalPath is the sqlite event journal. Empty disables it.
	JournalPath string

	ListenAddr string
	LogLevel   string
	LogJSON    bool

	// Owner draws the lottery and opens token trading.
	Owner             string
	FaucetMaxWithdraw string
	SaleRate          int64
	SaleCap           string
}

const (
	FallbackVotingPeriod      = 7 * 24 * time.Hour
	FallbackMinStake          = "1.000"
	FallbackStateBackend      = "memory"
	FallbackListenAddr        = "127.0.0.1:8480"
	FallbackLogLevel          = "info"
	FallbackOwner             = "owner"
	FallbackFaucetMaxWithdraw = "0.1"
	FallbackSaleRate          = 1000
	FallbackSaleCap           = "100"
)

var defaultLocal = Local{
	VotingPeriod:      FallbackVotingPeriod,
	MinStake:          FallbackMinStake,
	StateBackend:      FallbackStateBackend,
	ListenAddr:        FallbackListenAddr,
	LogLevel:          FallbackLogLevel,
	Owner:             FallbackOwner,
	FaucetMaxWithdraw: FallbackFaucetMaxWithdraw,
	SaleRate:          FallbackSaleRate,
	SaleCap:           FallbackSaleCap,
}

// GetDefaultLocal returns a copy of the default config.
func GetDefaultLocal() Local {
	return defaultLocal
}

// LoadConfigFromDisk returns the defaults overlaid with dir/config.json. A missing file is not an error.
func LoadConfigFromDisk(dir string) (Local, error) {
	c := defaultLocal
	if dir == "" {
		return c, nil
	}
	c.DataDir = dir
	c, err := mergeConfigFromFile(filepath.Join(dir, ConfigFilename), c)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	return c, err
}

func mergeConfigFromFile(configpath string, source Local) (Local, error) {
	f, err := os.Open(configpath)
	if err != nil {
		return source, err
	}
	defer f.Close()

	err = loadConfig(f, &source)
	return source, err
}

func loadConfig(reader io.Reader, config *Local) error {
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	return dec.Decode(config)
}

// SaveToDisk writes the settings into dir/config.json.
func (cfg Local) SaveToDisk(dir string) error {
	data, err := json.MarshalIndent(cfg, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ConfigFilename), data, 0644)
}

// ApplyEnv loads envFile into the process environment (missing files are ignored) and
// then overlays every TREASURY_* variable that is set.
func (cfg *Local) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	str := map[string]*string{
		"TREASURY_MIN_STAKE":     &cfg.MinStake,
		"TREASURY_STATE_BACKEND": &cfg.StateBackend,
		"TREASURY_DATA_DIR":      &cfg.DataDir,
		"TREASURY_JOURNAL":       &cfg.JournalPath,
		"TREASURY_LISTEN":        &cfg.ListenAddr,
		"TREASURY_LOG_LEVEL":     &cfg.LogLevel,
		"TREASURY_OWNER":         &cfg.Owner,
		"TREASURY_FAUCET_MAX":    &cfg.FaucetMaxWithdraw,
		"TREASURY_SALE_CAP":      &cfg.SaleCap,
	}
	for name, dst := range str {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv("TREASURY_VOTING_PERIOD"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TREASURY_VOTING_PERIOD: %w", err)
		}
		cfg.VotingPeriod = d
	}
	if v, ok := os.LookupEnv("TREASURY_LOG_JSON"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TREASURY_LOG_JSON: %w", err)
		}
		cfg.LogJSON = b
	}
	if v, ok := os.LookupEnv("TREASURY_SALE_RATE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TREASURY_SALE_RATE: %w", err)
		}
		cfg.SaleRate = n
	}
	return nil
}

// Validate checks every setting the daemon depends on.
func (cfg Local) Validate() error {
	if cfg.VotingPeriod <= 0 {
		return fmt.Errorf("VotingPeriod must be positive, got %s", cfg.VotingPeriod)
	}
	for name, s := range map[string]string{
		"MinStake":          cfg.MinStake,
		"FaucetMaxWithdraw": cfg.FaucetMaxWithdraw,
		"SaleCap":           cfg.SaleCap,
	} {
		amt, err := dao.ParseAmount(s)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if amt <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, s)
		}
	}
	switch cfg.StateBackend {
	case "memory":
	case "file", "pebble":
		if cfg.DataDir == "" {
			return fmt.Errorf("%s backend needs DataDir", cfg.StateBackend)
		}
	default:
		return fmt.Errorf("unknown StateBackend %q", cfg.StateBackend)
	}
	if cfg.SaleRate <= 0 {
		return fmt.Errorf("SaleRate must be positive, got %d", cfg.SaleRate)
	}
	if cfg.Owner == "" {
		return errors.New("Owner must be set")
	}
	if cfg.ListenAddr == "" {
		return errors.New("ListenAddr must be set")
	}
	return nil
}

// MinStakeAmount returns MinStake in base units. Call Validate first.
func (cfg Local) MinStakeAmount() dao.Amount {
	return dao.MustAmount(cfg.MinStake)
}

// FaucetMaxAmount returns FaucetMaxWithdraw in base units. Call Validate first.
func (cfg Local) FaucetMaxAmount() dao.Amount {
	return dao.MustAmount(cfg.FaucetMaxWithdraw)
}

// SaleCapAmount returns SaleCap in base units. Call Validate first.
func (cfg Local) SaleCapAmount() dao.Amount {
	return dao.MustAmount(cfg.SaleCap)
}
