package env

import (
	"os"
	"strconv"
)

func GetString(key, fallback string) string {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return val
}

func GetInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	valInt, err := strconv.Atoi(val)

	if err != nil {
		return fallback
	}
	return valInt
}

// GetBool accepts anything strconv.ParseBool does plus "sim"/"nao".
func GetBool(key string, fallback bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	switch val {
	case "sim", "Sim", "SIM":
		return true
	case "nao", "não", "Nao", "Não", "NAO", "NÃO":
		return false
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
