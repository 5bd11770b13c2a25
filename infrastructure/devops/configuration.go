package devops

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

type DBEntry struct {
	Name     string `yaml:"name" json:"name"`
	Host     string `yaml:"host" json:"host"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// GetDSN renders a go-sql-driver DSN for one schema on this server. An
// empty dbname connects without selecting a schema, which is what the
// multi-tenant pool wants.
func (db DBEntry) GetDSN(dbname string) string {
	host := db.Host
	if !strings.Contains(host, ":") {
		host = host + ":3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", db.Username, db.Password, host, dbname)
}

type DBConfig struct {
	Databases []DBEntry `yaml:"databases"`
}

var (
	once    sync.Once
	dbList  []DBEntry
	loadErr error
)

func parameterName() string {
	if name := os.Getenv("DB_PARAMETER"); name != "" {
		return name
	}
	return "shiftguard-databases"
}

// LoadDBConfig reads the database server list from SSM, once per process.
// The parameter holds a yaml list of DBEntry.
func LoadDBConfig(ctx context.Context) ([]DBEntry, error) {
	once.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(parameterName()),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		var parsed []DBEntry
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		dbList = parsed
	})

	return dbList, loadErr
}

// LoadDatabases returns the same list keyed by lowercased entry name, for
// callers that select a server by environment.
func LoadDatabases(ctx context.Context) (map[string]DBEntry, error) {
	entries, err := LoadDBConfig(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]DBEntry)
	for _, entry := range entries {
		result[strings.ToLower(entry.Name)] = entry
	}
	return result, nil
}
