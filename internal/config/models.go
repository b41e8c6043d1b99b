package config

import "time"

// IMAPConfig represents the configuration for the IMAP mailbox transport
type IMAPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	TLS        bool
	Folder     string
	UnseenOnly bool
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// PipelineConfig represents the processing pipeline configuration
type PipelineConfig struct {
	MaxPromptSize  int
	StripHTML      bool
	RetryAttempts  int
	RetryBackoff   time.Duration
	MessageTimeout time.Duration
	PollInterval   time.Duration
}

// GetIMAP returns the IMAP configuration
func (c *Config) GetIMAP() IMAPConfig {
	return IMAPConfig{
		Host:       c.GetString("mailbox.imap.host"),
		Port:       c.GetInt("mailbox.imap.port"),
		Username:   c.GetString("mailbox.imap.username"),
		Password:   c.GetString("mailbox.imap.password"),
		TLS:        c.GetBool("mailbox.imap.tls"),
		Folder:     c.GetString("mailbox.imap.folder"),
		UnseenOnly: c.GetBool("mailbox.imap.unseen_only"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetPipeline returns the pipeline configuration, substituting safe
// defaults for unparseable durations
func (c *Config) GetPipeline() PipelineConfig {
	retryBackoff, err := c.GetDuration("pipeline.retry_backoff")
	if err != nil {
		retryBackoff = time.Second
	}
	messageTimeout, err := c.GetDuration("pipeline.message_timeout")
	if err != nil {
		messageTimeout = time.Minute
	}
	pollInterval, err := c.GetDuration("pipeline.poll_interval")
	if err != nil {
		pollInterval = 5 * time.Minute
	}
	return PipelineConfig{
		MaxPromptSize:  c.GetInt("pipeline.max_prompt_size"),
		StripHTML:      c.GetBool("pipeline.strip_html"),
		RetryAttempts:  c.GetInt("pipeline.retry_attempts"),
		RetryBackoff:   retryBackoff,
		MessageTimeout: messageTimeout,
		PollInterval:   pollInterval,
	}
}
