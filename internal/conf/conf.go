package conf

type Bootstrap struct {
	Server    *Server
	Data      *Data
	Auth      *Auth
	Inference *Inference
}

type Auth struct {
	JwtKey string
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}

type Inference struct {
	Provider    string       `json:"provider"`
	Gradio      *Gradio      `json:"gradio"`
	Openai      *OpenAI      `json:"openai"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type Gradio struct {
	BaseUrl string `json:"base_url"`
	ApiName string `json:"api_name"`
	Timeout int32  `json:"timeout"`
}

type OpenAI struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
