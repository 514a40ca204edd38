package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Devto     DevtoConfig     `mapstructure:"devto"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Logstash  LogstashConfig  `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// DevtoConfig dev.to 采集端配置
type DevtoConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	ApiKey      string `mapstructure:"api_key"`
	Username    string `mapstructure:"username"`
	PageSize    int    `mapstructure:"page_size"`
	DelayMs     int    `mapstructure:"delay_ms"`
	HistoryDays int    `mapstructure:"history_days"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

type LLMConfig struct {
	URL       string `mapstructure:"url"`
	TextModel string `mapstructure:"text_model"`
	ApiKey    string `mapstructure:"api_key"`
}

// AnalyticsConfig 派生指标的全部阈值, 启动后只读
type AnalyticsConfig struct {
	QualityWindowDays       int     `mapstructure:"quality_window_days"`
	MinViews                int     `mapstructure:"min_views"`
	AttributionWindowHours  int     `mapstructure:"attribution_window_hours"`
	ProximityToleranceHours int     `mapstructure:"proximity_tolerance_hours"`
	RestartMinViews         int     `mapstructure:"restart_min_views"`
	RestartGrowthRatio      float64 `mapstructure:"restart_growth_ratio"`
	RestartWindowDays       int     `mapstructure:"restart_window_days"`
	SentimentPositive       float64 `mapstructure:"sentiment_positive"`
	SentimentNegative       float64 `mapstructure:"sentiment_negative"`
	SentimentBatchSize      int     `mapstructure:"sentiment_batch_size"`
	LongTailMinAgeDays      int     `mapstructure:"long_tail_min_age_days"`
	LongTailWindowDays      int     `mapstructure:"long_tail_window_days"`
	LongTailMinViews        int     `mapstructure:"long_tail_min_views"`
}

// LogstashConfig 远端日志, Addr 为空时关闭
type LogstashConfig struct {
	Addr  string `mapstructure:"addr"`
	Index string `mapstructure:"index"`
}

// normalize 未配置的阈值回填默认值
func (c *Config) normalize() {
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	a := &c.Analytics
	if a.QualityWindowDays <= 0 {
		a.QualityWindowDays = 90
	}
	if a.MinViews <= 0 {
		a.MinViews = 20
	}
	if a.AttributionWindowHours <= 0 {
		a.AttributionWindowHours = 168
	}
	if a.ProximityToleranceHours <= 0 {
		a.ProximityToleranceHours = 6
	}
	if a.RestartMinViews <= 0 {
		a.RestartMinViews = 50
	}
	if a.RestartGrowthRatio <= 0 {
		a.RestartGrowthRatio = 0.5
	}
	if a.RestartWindowDays <= 0 {
		a.RestartWindowDays = 30
	}
	if a.SentimentPositive == 0 {
		a.SentimentPositive = 0.3
	}
	if a.SentimentNegative == 0 {
		a.SentimentNegative = -0.2
	}
	if a.SentimentBatchSize <= 0 {
		a.SentimentBatchSize = 50
	}
	if a.LongTailMinAgeDays <= 0 {
		a.LongTailMinAgeDays = 30
	}
	if a.LongTailWindowDays <= 0 {
		a.LongTailWindowDays = 30
	}
	if a.LongTailMinViews <= 0 {
		a.LongTailMinViews = 20
	}
	d := &c.Devto
	if d.BaseURL == "" {
		d.BaseURL = "https://dev.to/api"
	}
	if d.PageSize <= 0 {
		d.PageSize = 80
	}
	if d.HistoryDays <= 0 {
		d.HistoryDays = 90
	}
	if d.TimeoutSecs <= 0 {
		d.TimeoutSecs = 20
	}
}
