package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[server]
port = ":9999"

[database]
dsn = "file::memory:?cache=shared"
`

func TestParseConfig_Defaults(t *testing.T) {
	t.Setenv(envDSN, "")
	config, err := ParseConfig([]byte(minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, ":9999", config.Server.Port)
	assert.Equal(t, 7.0, config.Scoring.Grade)
	assert.Equal(t, 75.0, config.Scoring.Attendance)
	assert.Equal(t, "Authorization", config.Auth.TokenHeader)
	assert.Equal(t, "auth:{student}", config.Auth.TokenKeyTemplate)
	assert.Equal(t, "./migrations", config.Database.MigrationsDir)
	assert.Equal(t, 300, config.Cache.TTLSeconds)
	assert.Equal(t, 60, config.Cache.GranularitySeconds)
}

func TestParseConfig_Sections(t *testing.T) {
	data := minimalConfig + `
[scoring]
target_grade = 8.5
target_attendance = 90.0

[[api.required_headers]]
name = "X-Client"
value = "pluggbulle"

[gsheet.fall]
sheet_id = "abc"
sheet_name = "Fall"
schedule = "0 * * * *"
students = ["jane.doe", "john.roe"]
`
	config, err := ParseConfig([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, 8.5, config.Scoring.Grade)
	assert.Equal(t, 90.0, config.Scoring.Attendance)
	require.Len(t, config.API.RequiredHeaders, 1)
	assert.Equal(t, "X-Client", config.API.RequiredHeaders[0].Name)
	require.Contains(t, config.GSheet, "fall")
	assert.Equal(t, []string{"jane.doe", "john.roe"}, config.GSheet["fall"].Students)
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(envDSN, "postgres://u:p@localhost/study")
	t.Setenv(envRedisURL, "redis://localhost:6379/1")
	t.Setenv(envBotToken, "123:abc")

	config, err := ParseConfig([]byte(minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost/study", config.Database.DSN)
	assert.Equal(t, "redis://localhost:6379/1", config.Auth.RedisURL)
	assert.Equal(t, "redis://localhost:6379/1", config.Cache.RedisURL)
	assert.Equal(t, "123:abc", config.Bot.Token)
}

func TestParseConfig_Errors(t *testing.T) {
	t.Setenv(envDSN, "")
	testCases := []struct {
		name string
		data string
	}{
		{name: "no port", data: "[database]\ndsn = \"x.db\"\n"},
		{name: "no dsn", data: "[server]\nport = \":1\"\n"},
		{name: "bad timezone", data: "[server]\nport = \":1\"\ntimezone = \"Nowhere/Atlantis\"\n[database]\ndsn = \"x.db\"\n"},
		{name: "not toml", data: "port ="},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}

func TestConfig_Location(t *testing.T) {
	config := &Config{}
	loc, err := config.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	config.Server.Timezone = "Nowhere/Atlantis"
	_, err = config.Location()
	assert.Error(t, err)
}
