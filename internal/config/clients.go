package config

import (
	"fmt"

	"github.com/addition-london/donations-gateway/internal/core/domain"
	"github.com/go-playground/validator"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
)

// LoadClients reads the static per-tenant credential file into a
// ClientDirectory. The file maps client ids to their processor credentials
// and optional notification topic:
//
//	{
//	  "stroke-association": {
//	    "merchant_id": "...",
//	    "public_key": "...",
//	    "private_key": "...",
//	    "display_name": "Stroke Association",
//	    "topic_name": "donations-stroke-association"
//	  }
//	}
//
// The directory is immutable after load; credential changes require a
// restart, but gateway clients are constructed per request so rotated keys
// take effect without draining in-flight state.
func LoadClients(path string) (domain.ClientDirectory, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("loading client config file %s: %w", path, err)
	}

	raw := map[string]domain.ClientConfig{}
	if err := k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("unmarshalling client config file %s: %w", path, err)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("client config file %s contains no clients", path)
	}

	validate := validator.New()
	for clientID, cfg := range raw {
		if err := validate.Struct(cfg); err != nil {
			return nil, fmt.Errorf("invalid config for client %q: %w", clientID, err)
		}
	}

	return domain.ClientDirectory(raw), nil
}
