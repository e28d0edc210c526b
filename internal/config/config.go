package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prime-pentrix/tutor-core/internal/llm"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt
	LocalUsers    map[string]string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	Providers []llm.ProviderConfig
}

// FromEnv reads service configuration. Each grading provider is one explicit
// cascade entry; a provider without a usable API key is simply absent from
// the cascade.
func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	timeout := time.Duration(envInt("LLM_TIMEOUT_SEC", 30)) * time.Second

	return Config{
		Mode:     mode,
		HTTPAddr: addr,

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		AuthSecret:    envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:     envOr("ADMIN_USER", "admin"),
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		LocalUsers:    userMap(os.Getenv("LOCAL_USERS")),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://app.primepentrix.ai"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:3010"),

		Providers: []llm.ProviderConfig{
			{
				Name:     "groq",
				BaseURL:  envOr("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
				APIKey:   os.Getenv("GROQ_API_KEY"),
				Model:    envOr("GROQ_MODEL", "llama-3.1-8b-instant"),
				Priority: 1,
				Timeout:  timeout,
			},
			{
				Name:     "openrouter",
				BaseURL:  envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
				APIKey:   os.Getenv("OPENROUTER_API_KEY"),
				Model:    envOr("OPENROUTER_MODEL", "meta-llama/llama-3.1-8b-instruct"),
				Priority: 2,
				Timeout:  timeout,
			},
			{
				Name:     "openai",
				APIKey:   os.Getenv("OPENAI_API_KEY"),
				Model:    envOr("OPENAI_MODEL", "gpt-4o-mini"),
				Priority: 3,
				Timeout:  timeout,
			},
		},
	}
}

// UserHashes is the local-login credential set: the admin account plus any
// LOCAL_USERS entries ("name:bcrypt-hash,...").
func (c Config) UserHashes() map[string]string {
	out := make(map[string]string, len(c.LocalUsers)+1)
	for k, v := range c.LocalUsers {
		out[k] = v
	}
	if c.AdminUser != "" && c.AdminPassHash != "" {
		out[c.AdminUser] = c.AdminPassHash
	}
	return out
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(k)); err == nil && v > 0 {
		return v
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func userMap(v string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(v, ",") {
		name, hash, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if ok && name != "" && hash != "" {
			out[name] = hash
		}
	}
	return out
}
