package app

import (
	"log"

	"tableflip.dev/weiwei/pkg/config"
	"tableflip.dev/weiwei/pkg/gateway"
	"tableflip.dev/weiwei/pkg/journal"
)

// Open wires a Service from cfg. The returned close func releases the store.
func Open(cfg *config.Config, logger *log.Logger) (*Service, func() error, error) {
	kv, err := cfg.OpenStore()
	if err != nil {
		return nil, nil, err
	}
	g := gateway.Select(gateway.Settings{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		Endpoint: cfg.Endpoint,
		Timeout:  cfg.Timeout,
		Logger:   logger,
	})
	svc := &Service{
		Journal:  journal.New(kv),
		Analyzer: g.Analyzer,
		Reporter: g.Reporter,
		Session:  &Session{},
	}
	return svc, kv.Close, nil
}
