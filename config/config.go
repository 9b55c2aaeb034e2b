package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Gateway GatewayConfig `mapstructure:"gateway"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
	Limits  LimitsConfig  `mapstructure:"limits"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Feature FeatureConfig `mapstructure:"feature"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// GatewayConfig 远程数据表网关配置
// 持久化数据全部存放在远程表存储服务中，本服务通过网关访问
type GatewayConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	FallbackBaseURL string        `mapstructure:"fallback_base_url"` // 主地址返回 404 时重试一次的备用地址
	ServiceToken    string        `mapstructure:"service_token"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 认证配置
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LimitsConfig 业务规则上限配置
type LimitsConfig struct {
	MaxActiveCourses int `mapstructure:"max_active_courses"` // 每个教师同时激活的课程上限
	JoinCodeLength   int `mapstructure:"join_code_length"`
}

// CacheConfig 汇总缓存节流配置
type CacheConfig struct {
	SummaryTTL time.Duration `mapstructure:"summary_ttl"`
}

// FeatureConfig 功能开关配置
type FeatureConfig struct {
	// 评审记录读取遇到后端已知的 500 缺陷时按空列表处理（而非报错）
	TolerateAssessmentRead500 bool `mapstructure:"tolerate_assessment_read_500"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("gateway.base_url", "http://localhost:9000")
	v.SetDefault("gateway.fallback_base_url", "")
	v.SetDefault("gateway.service_token", "")
	v.SetDefault("gateway.timeout", "20s")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "168h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("limits.max_active_courses", 3)
	v.SetDefault("limits.join_code_length", 6)

	v.SetDefault("cache.summary_ttl", "30s")

	v.SetDefault("feature.tolerate_assessment_read_500", true)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("GROUPMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("配置校验失败: gateway.base_url 不能为空")
	}
	if c.Gateway.Timeout <= 0 {
		return fmt.Errorf("配置校验失败: gateway.timeout 必须大于 0")
	}
	if c.Limits.MaxActiveCourses < 1 {
		return fmt.Errorf("配置校验失败: limits.max_active_courses 必须不小于 1")
	}
	if c.Limits.JoinCodeLength < 4 || c.Limits.JoinCodeLength > 12 {
		return fmt.Errorf("配置校验失败: limits.join_code_length 必须在 4-12 之间")
	}
	return nil
}
