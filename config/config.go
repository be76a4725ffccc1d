package config

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"clover-api"`
	Port                          int      `env:"PORT" env-default:"3004"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool     `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"30"`
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"30"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	MaxHeaderBytes                int      `env:"HTTP_SERVER_MAX_HEADER_BYTES" env-default:"64000"` // 64KB
	ReadHeaderTimeoutSeconds      int      `env:"HTTP_SERVER_READ_HEADER_TIMEOUT_SECONDS" env-default:"10"`
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET,POST"`
	MaxUploadSize                 string   `env:"HTTP_SERVER_MAX_UPLOAD_SIZE" env-default:"16M"`

	// Expected-serials file
	ExpectedColumns string `env:"EXPECTED_COLUMNS" env-default:"SERIAL FISICO INTERNO,SERIAL FISICO EXTERNO"`

	// Tokenization. Empty pattern falls back to the built-in default.
	TokenPattern   string `env:"TOKEN_PATTERN" env-default:""`
	MinTokenLength int    `env:"MIN_TOKEN_LENGTH" env-default:"0"`

	// Normalization defaults, overridable per request
	NormalizeUppercase    bool `env:"NORMALIZE_UPPERCASE" env-default:"true"`
	NormalizeStripSpaces  bool `env:"NORMALIZE_STRIP_SPACES" env-default:"true"`
	NormalizeStripDashes  bool `env:"NORMALIZE_STRIP_DASHES" env-default:"true"`
	NormalizeStripDots    bool `env:"NORMALIZE_STRIP_DOTS" env-default:"true"`
	NormalizeStripSlashes bool `env:"NORMALIZE_STRIP_SLASHES" env-default:"true"`

	// Fuzzy suggestions
	SuggestMaxDistance int `env:"SUGGEST_MAX_DISTANCE" env-default:"1"`
	SuggestTopK        int `env:"SUGGEST_TOP_K" env-default:"3"`
	SuggestTargetCap   int `env:"SUGGEST_TARGET_CAP" env-default:"200"`
	SuggestWorkerCount int `env:"SUGGEST_WORKER_COUNT" env-default:"4"`

	// Kafka Producer settings
	KafkaEnabled      bool     `env:"KAFKA_ENABLED" env-default:"false"`
	KafkaBrokers      []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaOutputTopic  string   `env:"KAFKA_OUTPUT_TOPIC" env-default:"reconciliation-events"`
	KafkaBatchSize    int      `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression  string   `env:"KAFKA_COMPRESSION" env-default:"snappy"`
}
