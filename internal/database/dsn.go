package database

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
)

// BuildURL resolves the Postgres connection string from the environment.
//
// Resolution order:
//   - DATABASE_URL, used verbatim
//   - INSTANCE_CONNECTION_NAME with DB_USER, DB_PASSWORD and DB_NAME, connecting
//     through the Cloud SQL unix socket mounted at /cloudsql/<instance>
//   - DB_HOST with DB_PORT (default 5432), DB_USER, DB_PASSWORD and DB_NAME
func BuildURL() (string, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL, nil
	}

	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	var host, port string
	if instance := os.Getenv("INSTANCE_CONNECTION_NAME"); instance != "" {
		host = "/cloudsql/" + instance
	} else if h := os.Getenv("DB_HOST"); h != "" {
		host = h
		port = os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
	} else {
		return "", fmt.Errorf("none of DATABASE_URL, INSTANCE_CONNECTION_NAME or DB_HOST is set")
	}

	if dbUser == "" || dbName == "" {
		return "", fmt.Errorf("DB_USER and DB_NAME must be set when DATABASE_URL is not")
	}

	parts := []string{"host=" + host}
	if port != "" {
		parts = append(parts, "port="+port)
	}
	parts = append(parts, "user="+dbUser)
	// Without a password the socket connection relies on IAM authentication.
	if dbPassword != "" {
		parts = append(parts, "password="+dbPassword)
	}
	parts = append(parts, "dbname="+dbName, "sslmode=disable")

	return strings.Join(parts, " "), nil
}

// ConnectionSummary describes the resolved connection for startup logs with
// the password removed.
func ConnectionSummary() map[string]string {
	summary := make(map[string]string)

	switch {
	case os.Getenv("DATABASE_URL") != "":
		summary["connection_type"] = "direct"
		summary["database_url"] = redactPassword(os.Getenv("DATABASE_URL"))
	case os.Getenv("INSTANCE_CONNECTION_NAME") != "":
		instance := os.Getenv("INSTANCE_CONNECTION_NAME")
		summary["connection_type"] = "cloud_sql"
		summary["instance"] = instance
		summary["user"] = os.Getenv("DB_USER")
		summary["database"] = os.Getenv("DB_NAME")
		summary["socket_path"] = "/cloudsql/" + instance
	case os.Getenv("DB_HOST") != "":
		summary["connection_type"] = "tcp"
		summary["host"] = os.Getenv("DB_HOST")
		summary["user"] = os.Getenv("DB_USER")
		summary["database"] = os.Getenv("DB_NAME")
	default:
		summary["connection_type"] = "none"
	}

	return summary
}

var passwordParam = regexp.MustCompile(`password=\S+`)

// redactPassword masks the password of a URL or key=value connection string.
func redactPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgresql://") || strings.HasPrefix(connStr, "postgres://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return "postgres://<unparseable>"
		}
		return u.Redacted()
	}
	return passwordParam.ReplaceAllString(connStr, "password=xxxxx")
}
