package postgres

import (
	"context"
	"fmt"
	"net"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Sparepart-api/pkg/config"
)

// NewPool abre el pool, registra el codec NUMERIC -> decimal y verifica la conexión.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// poolConfig traduce config.DBConfig a pgxpool.Config sin abrir conexiones.
// Valores <= 0 dejan el default de pgx.
func poolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	p := cfg.Pool
	if p.MaxConns > 0 {
		pc.MaxConns = p.MaxConns
	}
	if p.MinConns > 0 {
		pc.MinConns = min(p.MinConns, pc.MaxConns)
	}
	if p.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = p.MaxConnLifetime
	}
	if p.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = p.MaxConnIdleTime
	}
	if p.HealthCheckPeriod > 0 {
		pc.HealthCheckPeriod = p.HealthCheckPeriod
	}
	if p.ForceIPv4 {
		pc.ConnConfig.LookupFunc = ipv4Lookup{fallbackDNS: p.FallbackDNS}.lookup
	}

	pc.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return pc, nil
}

// ipv4Lookup resuelve solo registros A. Supabase publica AAAA y muchos contenedores no tienen
// ruta IPv6; si el resolver local no devuelve A se pregunta a fallbackDNS.
type ipv4Lookup struct {
	fallbackDNS string
}

func (l ipv4Lookup) lookup(ctx context.Context, host string) ([]string, error) {
	if net.ParseIP(host) != nil {
		return []string{host}, nil
	}
	if addrs := lookupA(ctx, net.DefaultResolver, host); len(addrs) > 0 {
		return addrs, nil
	}
	if l.fallbackDNS != "" {
		if addrs := lookupA(ctx, l.resolver(), host); len(addrs) > 0 {
			return addrs, nil
		}
	}
	// Sin registros A: que pgconn pruebe lo que haya.
	return net.DefaultResolver.LookupHost(ctx, host)
}

func (l ipv4Lookup) resolver() *net.Resolver {
	return &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, l.fallbackDNS)
		},
	}
}

func lookupA(ctx context.Context, r *net.Resolver, host string) []string {
	ips, err := r.LookupIP(ctx, "ip4", host)
	if err != nil {
		return nil
	}
	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, ip.String())
	}
	return addrs
}
