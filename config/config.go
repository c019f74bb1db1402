// Package config 读取 TOML 格式的导入配置，文件中缺失的键保留默认值。
package config

import (
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/dxf"
	"github.com/zooyer/cadimport/mesh"
)

type Config struct {
	DXF  dxf.Options  `toml:"dxf"`
	Mesh mesh.Options `toml:"mesh"`
}

func Default() Config {
	return Config{
		DXF:  dxf.DefaultOptions(),
		Mesh: mesh.DefaultOptions(),
	}
}

// Decode 在默认配置之上解码，未知的键视为错误
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(r).DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(core.ErrMalformedField, err.Error())
	}
	return cfg, nil
}

func Load(filename string) (cfg Config, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return Config{}, errors.Wrap(core.ErrIO, err.Error())
	}

	defer func() {
		if e := file.Close(); e != nil && err == nil {
			err = errors.Wrap(core.ErrIO, e.Error())
		}
	}()

	return Decode(file)
}

// Encode 以 TOML 写出配置，可作为配置文件模板
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
