package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Report struct {
		Dir              string
		Parallelism      int
		BaselineLocation int   `mapstructure:"baseline_location"`
		Locations        []int `mapstructure:"locations"`
	} `mapstructure:"report"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.timezone", "Europe/Berlin")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("report.dir", "Report")
	v.SetDefault("report.parallelism", 4)
	v.SetDefault("report.baseline_location", 55)
	v.SetDefault("report.locations", []int{55, 53})
}

// Load читает .env (если есть), затем YAML, затем переменные APP_*.
// flags может быть nil; заданные флаги перекрывают всё остальное.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	var c Config

	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	defaults(v)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range map[string]string{
			"postgres.dsn": "dsn",
			"http.addr":    "addr",
			"report.dir":   "out",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if c.Report.Parallelism < 1 {
		return fmt.Errorf("report.parallelism must be >= 1, got %d", c.Report.Parallelism)
	}
	if len(c.Report.Locations) == 0 {
		return errors.New("report.locations must not be empty")
	}
	return nil
}
