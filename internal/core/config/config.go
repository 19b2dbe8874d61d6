package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"storefront-gateway/internal/core/proxy"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Commerce holds the backend commerce API configuration.
	Commerce CommerceConfig `mapstructure:",squash"`

	// Payment holds the hosted payment widget configuration.
	Payment PaymentConfig `mapstructure:",squash"`

	// Session holds the session state store configuration.
	Session SessionConfig `mapstructure:",squash"`

	// Checkout holds the checkout flow tuning knobs.
	Checkout CheckoutConfig `mapstructure:",squash"`

	// Proxy holds the optional outbound proxy used for commerce API calls.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// CommerceConfig holds the location of the backend commerce API.
type CommerceConfig struct {
	// URL is the base URL of the commerce API.
	URL string `mapstructure:"COMMERCE_API_URL" required:"true"`
	// StoreID scopes every storefront call to /storefront/store/{StoreID}.
	StoreID string `mapstructure:"COMMERCE_STORE_ID" required:"true"`
	// Timeout bounds each outbound request.
	Timeout time.Duration `mapstructure:"COMMERCE_API_TIMEOUT" default:"10s"`
}

// PaymentConfig holds the public payment gateway settings.
type PaymentConfig struct {
	// KeyID is the gateway public key. Falls back to the test-mode key.
	KeyID string `mapstructure:"PAYMENT_KEY_ID" default:"rzp_test_storefront"`
	// ScriptURL is the CDN location of the hosted checkout script.
	ScriptURL string `mapstructure:"PAYMENT_SCRIPT_URL" default:"https://checkout.razorpay.com/v1/checkout.js"`
	// Currency is the ISO currency code sent to the widget.
	Currency string `mapstructure:"PAYMENT_CURRENCY" default:"INR"`
	// StoreName is displayed in the payment widget header.
	StoreName string `mapstructure:"STORE_NAME" default:"Storefront"`
}

// SessionConfig holds the session state store settings.
type SessionConfig struct {
	// RedisURL should be in the format redis://[:password@]host[:port][/database].
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
	// TTL is how long an idle session's cart and checkout state are kept.
	TTL time.Duration `mapstructure:"SESSION_TTL" default:"24h"`
}

// CheckoutConfig holds cart and checkout behaviour settings.
type CheckoutConfig struct {
	// CartErrorTTL is how long a cart error banner stays visible.
	CartErrorTTL time.Duration `mapstructure:"CART_ERROR_TTL" default:"5s"`
	// ErrorTTL is how long a checkout error banner stays visible.
	ErrorTTL time.Duration `mapstructure:"CHECKOUT_ERROR_TTL" default:"10s"`
	// MaxRetries caps the manual "Try Again" affordance.
	MaxRetries int `mapstructure:"CHECKOUT_MAX_RETRIES" default:"3"`
	// RedirectDelay is the pause before the browser shows the confirmation page.
	RedirectDelay time.Duration `mapstructure:"COD_REDIRECT_DELAY" default:"1500ms"`
}

// ProxyConfig holds the outbound proxy credentials.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROXY_ENABLED" default:"false"`
	Hostname string `mapstructure:"PROXY_HOST"`
	Port     int    `mapstructure:"PROXY_PORT"`
	Username string `mapstructure:"PROXY_USERNAME"`
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

// Settings converts the proxy configuration into transport settings.
func (p ProxyConfig) Settings() proxy.Settings {
	return proxy.Settings{
		Enabled:  p.Enabled,
		Hostname: p.Hostname,
		Port:     p.Port,
		Username: p.Username,
		Password: p.Password,
	}
}
