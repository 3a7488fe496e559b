package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"

	"github.com/simaogato/wizardfund-backend/internal/adapter/fundapi"
	grpcadapter "github.com/simaogato/wizardfund-backend/internal/adapter/grpc"
	"github.com/simaogato/wizardfund-backend/internal/adapter/grpc/fundv1"
	"github.com/simaogato/wizardfund-backend/internal/adapter/queue"
	"github.com/simaogato/wizardfund-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/wizardfund-backend/internal/observability/metrics"
	"github.com/simaogato/wizardfund-backend/internal/scheduler"
	"github.com/simaogato/wizardfund-backend/internal/usecase/deposit"
	"github.com/simaogato/wizardfund-backend/internal/usecase/history"
	"github.com/simaogato/wizardfund-backend/internal/usecase/manager"
	"github.com/simaogato/wizardfund-backend/internal/usecase/portfolio"
	"github.com/simaogato/wizardfund-backend/internal/usecase/snapshot"
	"github.com/simaogato/wizardfund-backend/internal/usecase/withdraw"
)

const shutdownTimeout = 10 * time.Second

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the gRPC server, the snapshot consumer and the scheduler",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
}

func serve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx = log.Logger.WithContext(ctx)

	metrics.Init()

	// 1. Setup Database
	db, err := postgres.NewDB(ctx, &cfg.Db)
	if err != nil {
		return fmt.Errorf("error while connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	// 2. Initialize Repositories (Postgres) and the fund API gateway
	poolRepo := postgres.NewPoolRepository(db)
	managerRepo := postgres.NewManagerRepository(db)
	allocationRepo := postgres.NewAllocationRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	gateway := fundapi.NewClient(&cfg.FundAPI)
	settings := cfg.Fund.Settings()

	// 3. Initialize Services (Use Cases)
	depositService := deposit.NewDepositService(poolRepo, managerRepo, gateway, settings)
	withdrawService := withdraw.NewWithdrawService(poolRepo, managerRepo, allocationRepo, gateway, settings)
	portfolioService := portfolio.NewPortfolioService(poolRepo, managerRepo, allocationRepo, settings.ScalingFactor)
	managerService := manager.NewManagerService(managerRepo, poolRepo, gateway, settings.ScalingFactor)
	historyService := history.NewHistoryService(transactionRepo, settings.ScalingFactor)
	snapshotService := snapshot.NewSnapshotService(poolRepo, managerRepo, allocationRepo, transactionRepo)

	// 4. Background components
	var upstreamHealthy atomic.Bool
	upstreamHealthy.Store(true)

	sched := scheduler.NewScheduler(managerService, gateway, upstreamHealthy.Store)
	if err := sched.RegisterAll(ctx, &cfg.Schedule); err != nil {
		return err
	}

	// 5. gRPC server
	grpcServer := grpclib.NewServer(grpclib.ChainUnaryInterceptor(
		grpcadapter.LoggingInterceptor(),
		grpcadapter.AuthInterceptor(cfg.Server.APIToken, grpcadapter.MutatingMethods...),
	))
	fundv1.RegisterFundServiceServer(grpcServer, grpcadapter.NewServer(
		depositService, withdrawService, portfolioService, managerService, historyService,
	))

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.GRPCAddress, err)
	}

	metricsServer := metrics.NewServer(cfg.Metrics.GetMetricsPort(), upstreamHealthy.Load)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", cfg.Server.GRPCAddress).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpclib.ErrServerStopped) {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info().Int("port", cfg.Metrics.GetMetricsPort()).Msg("metrics server listening")
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	if cfg.Queue.Enabled {
		consumer := queue.NewConsumer(&cfg.Queue, snapshotService)
		g.Go(func() error {
			return consumer.Run(gctx)
		})
	}

	g.Go(func() error {
		return sched.Run(gctx)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		grpcServer.GracefulStop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return metricsServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("stopped")
	return nil
}
