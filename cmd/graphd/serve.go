// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ontograph/ontograph/authz"
	authzpg "github.com/ontograph/ontograph/authz/postgres"
	"github.com/ontograph/ontograph/config"
	"github.com/ontograph/ontograph/graphstore"
	graphpg "github.com/ontograph/ontograph/graphstore/postgres"
	"github.com/ontograph/ontograph/logging"
	"github.com/ontograph/ontograph/ontids"
	"github.com/ontograph/ontograph/ontology"
	"github.com/ontograph/ontograph/rpcsession"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept connections and resolve subgraphs over the RPC session protocol",
		RunE:  runServe,
	}

	cmd.Flags().String("postgres-dsn", "", "Postgres connection string (overrides config default)")
	cmd.Flags().String("listen", "127.0.0.1:7420", "Address to accept RPC session connections on")
	cmd.Flags().String("metrics-listen", "127.0.0.1:7421", "Address to serve /metrics on")
	cmd.Flags().Uint8("resolve-depth", config.Default().DefaultResolveDepth, "Default per-edge-kind traversal depth for resolve_vertex requests")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()

	dsn, _ := cmd.Flags().GetString("postgres-dsn")
	if dsn != "" {
		cfg.PostgresDSN = dsn
	}
	listen, _ := cmd.Flags().GetString("listen")
	metricsListen, _ := cmd.Flags().GetString("metrics-listen")
	cfg.DefaultResolveDepth, _ = cmd.Flags().GetUint8("resolve-depth")
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("graphd: invalid config: %w", err)
	}

	log := logging.New()
	reg := prometheus.NewRegistry()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("graphd: connect postgres: %w", err)
	}
	defer pool.Close()

	graphStore := graphpg.New(pool)
	if err := graphStore.Migrate(ctx); err != nil {
		return fmt.Errorf("graphd: migrate graph store: %w", err)
	}
	policyStore := authzpg.New(pool)
	if err := policyStore.Migrate(ctx); err != nil {
		return fmt.Errorf("graphd: migrate policy store: %w", err)
	}

	cache, err := authz.NewCache(reg)
	if err != nil {
		return fmt.Errorf("graphd: construct authorization cache: %w", err)
	}
	checker := authz.NewChecker(policyStore, policyStore, cache)

	listener, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("graphd: listen on %s: %w", listen, err)
	}
	defer listener.Close()
	log.Info("listening", "addr", listen)

	metricsServer := &http.Server{Addr: metricsListen, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server exited", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = metricsServer.Close()
		_ = listener.Close()
	}()

	srv := &server{
		graphStore: graphStore,
		checker:    checker,
		log:        log,
		depths:     uniformDepths(cfg.DefaultResolveDepth),
	}

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("graphd: accept: %w", err)
		}
		connLog := log.With("remote", conn.RemoteAddr().String())
		go func() {
			defer conn.Close()
			if err := rpcsession.Serve(ctx, conn, connLog, srv.handle); err != nil {
				connLog.Warn("connection closed", "err", err)
			}
		}()
	}
}

// server answers RPC session requests for the "graph" service.
type server struct {
	graphStore graphstore.Store
	checker    *authz.Checker
	log        logging.Logger
	depths     graphstore.GraphResolveDepths
}

// uniformDepths builds a GraphResolveDepths that permits depth outgoing hops of every edge
// kind, the flat default this server applies to every resolve_vertex request. HasLeftEntity
// and HasRightEntity also get an equal incoming budget, so a resolved entity expands both to
// the links it names and to the links that name it; every other edge kind is ontology-only and
// has no meaningful incoming direction.
func uniformDepths(depth uint8) graphstore.GraphResolveDepths {
	return graphstore.GraphResolveDepths{
		ontology.ConstrainsPropertiesOn:       {Outgoing: depth},
		ontology.InheritsFrom:                 {Outgoing: depth},
		ontology.ConstrainsLinksOn:            {Outgoing: depth},
		ontology.ConstrainsLinkDestinationsOn: {Outgoing: depth},
		ontology.HasLeftEntity:                {Outgoing: depth, Incoming: depth},
		ontology.HasRightEntity:               {Outgoing: depth, Incoming: depth},
		ontology.IsOfType:                     {Outgoing: depth},
		ontology.ConstrainsValuesOn:           {Outgoing: depth},
	}
}

// resolveVertexRequest is the JSON payload of a "graph"/"resolve_vertex" procedure call: the
// root vertices to resolve from, as entity ids, resolved under the server's default edge
// depths and the caller's current temporal position.
type resolveVertexRequest struct {
	Roots []entityIdPayload `json:"roots"`
}

type entityIdPayload struct {
	WebId      uuid.UUID `json:"web_id"`
	EntityUuid uuid.UUID `json:"entity_uuid"`
}

func (s *server) handle(ctx context.Context, req rpcsession.Request) rpcsession.Response {
	if req.Header.Service != "graph" {
		s.log.Warn("unknown service", "service", req.Header.Service, "request_id", req.Id)
		return rpcsession.Response{Status: rpcsession.StatusError, Err: fmt.Sprintf("graphd: unknown service %q", req.Header.Service)}
	}

	switch req.Header.Procedure {
	case "resolve_vertex":
		return s.resolveVertex(ctx, req)
	default:
		s.log.Warn("unknown procedure", "procedure", req.Header.Procedure, "request_id", req.Id)
		return rpcsession.Response{Status: rpcsession.StatusError, Err: fmt.Sprintf("graphd: unknown procedure %q", req.Header.Procedure)}
	}
}

func (s *server) resolveVertex(ctx context.Context, req rpcsession.Request) rpcsession.Response {
	var payload resolveVertexRequest
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		return rpcsession.Response{Status: rpcsession.StatusError, Err: fmt.Sprintf("decode request: %v", err)}
	}

	roots := make([]graphstore.VertexId, 0, len(payload.Roots))
	for _, id := range payload.Roots {
		roots = append(roots, graphstore.EntityVertexId(ontids.EntityId{WebId: id.WebId, EntityUuid: id.EntityUuid}))
	}

	now := time.Now().UTC()
	axes := ontids.TemporalAxes{
		Pinned:   ontids.PinnedAxis{Axis: ontids.DecisionTime, Instant: now},
		Variable: ontids.VariableAxis{Axis: ontids.TransactionTime},
	}.Resolve(now)

	subgraph, err := graphstore.ResolveSubgraph(ctx, s.graphStore, s.checker, req.Header.Actor, roots, s.depths, axes)
	if err != nil {
		return rpcsession.Response{Status: rpcsession.StatusError, Err: fmt.Sprintf("resolve subgraph: %v", err)}
	}

	body, err := json.Marshal(subgraph)
	if err != nil {
		return rpcsession.Response{Status: rpcsession.StatusError, Err: fmt.Sprintf("encode response: %v", err)}
	}
	return rpcsession.Response{Status: rpcsession.StatusSuccess, Payload: body}
}
