package config

import (
	"github.com/zx06/xkeyring/internal/errors"
)

// Resolve 合并 config/profile/format/service/target：CLI > ENV > Config。
func Resolve(opts Options) (Resolved, *errors.XError) {
	// 1) 读取配置文件（如有）
	cfg, cfgPath, xe := LoadConfig(opts)
	if xe != nil {
		return Resolved{}, xe
	}

	// 2) 选择 profile：--profile > XKEYRING_PROFILE > profiles.default > 空
	profile := ""
	explicit := false
	if opts.CLIProfileSet {
		profile, explicit = opts.CLIProfile, true
	} else if opts.EnvProfile != "" {
		profile, explicit = opts.EnvProfile, true
	} else if _, ok := cfg.Profiles["default"]; ok {
		profile = "default"
	}

	// 3) 获取完整 profile；显式指定但不存在时报错
	var selected Profile
	if profile != "" {
		p, ok := cfg.Profiles[profile]
		if !ok && explicit {
			return Resolved{}, errors.New(errors.CodeCfgInvalid, "profile not found",
				map[string]any{"profile": profile, "config_path": cfgPath})
		}
		selected = p
	}

	// 4) 合并 format：--format > XKEYRING_FORMAT > profile.format > auto
	format := pick("auto", selected.Format, opts.EnvFormat, opts.CLIFormat, opts.CLIFormatSet)

	// 5) service/target 同理；service 兜底为 DefaultService
	service := pick(DefaultService, selected.Service, opts.EnvService, opts.CLIService, opts.CLIServiceSet)
	target := pick("", selected.Target, opts.EnvTarget, opts.CLITarget, opts.CLITargetSet)
	if service == "" {
		return Resolved{}, errors.New(errors.CodeCfgInvalid, "service must not be empty", nil)
	}

	return Resolved{
		ConfigPath:  cfgPath,
		ProfileName: profile,
		Format:      format,
		Service:     service,
		Target:      target,
		Profile:     selected,
		MCP:         cfg.MCP,
	}, nil
}

func pick(def, fromProfile, fromEnv, fromCLI string, cliSet bool) string {
	v := def
	if fromProfile != "" {
		v = fromProfile
	}
	if fromEnv != "" {
		v = fromEnv
	}
	if cliSet {
		v = fromCLI
	}
	return v
}
