package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Telegram TelegramConfig
	Dialogue DialogueConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP que recibe el webhook.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TelegramConfig credenciales y webhook del Bot API.
type TelegramConfig struct {
	BotToken   string // token de @BotFather (obligatorio para `serve`)
	WebhookURL string // URL pública https://.../webhook; vacío = no registrar webhook al arrancar
}

// DialogueConfig parámetros del diálogo de creación de facturas.
type DialogueConfig struct {
	SessionTimeout time.Duration // inactividad máxima antes de expirar la sesión
	StartCooldown  time.Duration // ventana anti-spam del comando /start
	TempDir        string        // directorio para los PDF transitorios
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env).
// Las env vars tienen prioridad. Nombres esperados: BOT_TOKEN, WEBHOOK_URL, APP_ENV, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio de trabajo
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "invoice-bot"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Telegram: TelegramConfig{
			BotToken:   getString(v, "BOT_TOKEN", ""),
			WebhookURL: getString(v, "WEBHOOK_URL", ""),
		},
		Dialogue: DialogueConfig{
			SessionTimeout: time.Duration(getInt(v, "SESSION_TIMEOUT_SECONDS", 900)) * time.Second,
			StartCooldown:  time.Duration(getInt(v, "START_COOLDOWN_SECONDS", 2)) * time.Second,
			TempDir:        getString(v, "TEMP_DIR", os.TempDir()),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
