package config

// File 表示 xkeyring.yaml 的配置结构。
// 约束：配置优先级为 CLI > ENV > Config。
type File struct {
	Profiles map[string]Profile `yaml:"profiles"`
	MCP      MCPConfig          `yaml:"mcp"`
}

// Profile 描述一组默认的 keyring 坐标。
type Profile struct {
	Description string `yaml:"description"`
	Format      string `yaml:"format"`

	Service string `yaml:"service"`
	Target  string `yaml:"target"` // Linux collection / macOS domain / Windows target 名
}

type MCPConfig struct {
	Transport   string        `yaml:"transport"` // stdio | streamable_http
	AllowReveal bool          `yaml:"allow_reveal"`
	HTTP        MCPHTTPConfig `yaml:"http"`
}

type MCPHTTPConfig struct {
	Addr                string `yaml:"addr"`
	AuthToken           string `yaml:"auth_token"` // 支持 keyring:xxx 引用
	AllowPlaintextToken bool   `yaml:"allow_plaintext_token"`
}

// DefaultService 在 CLI/ENV/profile 均未给出 service 时使用。
const DefaultService = "xkeyring"

type Resolved struct {
	ConfigPath  string
	ProfileName string
	Format      string
	Service     string
	Target      string
	Profile     Profile
	MCP         MCPConfig
}

type Options struct {
	// ConfigPath: 若非空，则只读取该文件（不存在报错）。
	ConfigPath string

	// CLI
	CLIProfile    string
	CLIProfileSet bool
	CLIFormat     string
	CLIFormatSet  bool
	CLIService    string
	CLIServiceSet bool
	CLITarget     string
	CLITargetSet  bool

	// ENV（由调用方注入，便于测试）
	EnvProfile string
	EnvFormat  string
	EnvService string
	EnvTarget  string

	// ConfigHome 用于默认路径计算（为空则使用 XDG_CONFIG_HOME）。
	ConfigHome string

	// WorkDir 用于默认路径（为空则使用进程当前工作目录）。
	WorkDir string
}
