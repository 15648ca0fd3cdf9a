package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	analyticsinadapter "retrolog/internal/modules/analytics/adapter/in"
	analyticsoutadapter "retrolog/internal/modules/analytics/adapter/out"
	analyticsin "retrolog/internal/modules/analytics/port/in"
	analyticsout "retrolog/internal/modules/analytics/port/out"
	analyticsservice "retrolog/internal/modules/analytics/service"
	analyticsusecase "retrolog/internal/modules/analytics/usecase"
	journalinadapter "retrolog/internal/modules/journal/adapter/in"
	journaloutadapter "retrolog/internal/modules/journal/adapter/out"
	journalservice "retrolog/internal/modules/journal/service"
	journalusecase "retrolog/internal/modules/journal/usecase"
	suggestinadapter "retrolog/internal/modules/suggest/adapter/in"
	suggestoutadapter "retrolog/internal/modules/suggest/adapter/out"
	suggestin "retrolog/internal/modules/suggest/port/in"
	suggestservice "retrolog/internal/modules/suggest/service"
	suggestusecase "retrolog/internal/modules/suggest/usecase"
	tagsinadapter "retrolog/internal/modules/tags/adapter/in"
	tagsoutadapter "retrolog/internal/modules/tags/adapter/out"
	tagsservice "retrolog/internal/modules/tags/service"
	tagsusecase "retrolog/internal/modules/tags/usecase"
	workloginadapter "retrolog/internal/modules/worklog/adapter/in"
	worklogoutadapter "retrolog/internal/modules/worklog/adapter/out"
	worklogservice "retrolog/internal/modules/worklog/service"
	worklogusecase "retrolog/internal/modules/worklog/usecase"
	"retrolog/internal/platform/clock"
	"retrolog/internal/platform/config"
	"retrolog/internal/platform/id"
	"retrolog/internal/platform/tx"
	uiapp "retrolog/internal/ui/app"
)

type App struct {
	Config        config.Config
	Logger        *zap.Logger
	JournalCLI    journalinadapter.CLIHandler
	WorkLogCLI    workloginadapter.CLIHandler
	TagsCLI       tagsinadapter.CLIHandler
	SuggestCLI    suggestinadapter.CLIHandler
	AnalyticsCLI  analyticsinadapter.CLIHandler
	AnalyticsHTTP analyticsinadapter.HTTPHandler
	Analytics     analyticsin.Usecase
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}
	txm := tx.NoopManager{}

	tagIndex, err := tagsoutadapter.NewSQLiteTagIndex(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new tag index: %w", err)
	}
	tagsUC := tagsusecase.NewInteractor(tagsservice.NewTagService(tagsoutadapter.NewVaultTagStore(cfg.VaultPath), tagIndex))

	journalProjector, err := journaloutadapter.NewSQLiteProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new journal projector: %w", err)
	}
	journalUC := journalusecase.NewInteractor(journalservice.NewJournalService(
		clk,
		ids,
		journaloutadapter.NewVaultSessionStore(cfg.VaultPath),
		journaloutadapter.NewVaultMarkStore(cfg.VaultPath),
		journalProjector,
		txm,
	), tagsUC)

	worklogProjector, err := worklogoutadapter.NewSQLiteProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new work log projector: %w", err)
	}
	worklogUC := worklogusecase.NewInteractor(
		worklogservice.NewWorkLogService(clk, ids, worklogoutadapter.NewVaultWorkLogStore(cfg.VaultPath), worklogProjector, txm),
		worklogoutadapter.NewFileActiveWorkLogStore(cfg.VaultPath),
	)

	suggestUC := suggestusecase.NewInteractor(suggestservice.NewSuggestService(
		suggestoutadapter.NewFileManifestStore(cfg.VaultPath),
		suggestoutadapter.NewGRPCHost(cfg.Suggest.Timeout),
	))

	insights, err := analyticsoutadapter.NewSQLiteInsightStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new insight store: %w", err)
	}
	analyticsSvc := analyticsservice.NewAnalyticsService(analyticsservice.Dependencies{
		Journal:     analyticsoutadapter.NewJournalAdapter(journalUC),
		WorkLogs:    analyticsoutadapter.NewWorkLogAdapter(worklogUC),
		Insights:    insights,
		Suggestions: suggestionProvider(cfg, suggestUC),
		IDs:         ids,
		Logger:      logger,
	})
	analyticsUC := analyticsusecase.NewInteractor(analyticsSvc, clk, analyticsusecase.Settings{
		DefaultUser: cfg.User,
		WeekStart:   cfg.WeekStartDay(),
		Location:    cfg.Location(),
	})

	logger.Debug("application wired",
		zap.String("vault", cfg.VaultPath),
		zap.String("db", cfg.DBPath),
		zap.String("user", cfg.User))

	return &App{
		Config:        cfg,
		Logger:        logger,
		JournalCLI:    journalinadapter.NewCLIHandler(journalUC),
		WorkLogCLI:    workloginadapter.NewCLIHandler(worklogUC),
		TagsCLI:       tagsinadapter.NewCLIHandler(tagsUC),
		SuggestCLI:    suggestinadapter.NewCLIHandler(suggestUC),
		AnalyticsCLI:  analyticsinadapter.NewCLIHandler(analyticsUC),
		AnalyticsHTTP: analyticsinadapter.NewHTTPHandler(analyticsUC),
		Analytics:     analyticsUC,
	}, nil
}

// suggestionProvider is nil when the user opted out with suggest.plugin: none.
func suggestionProvider(cfg config.Config, suggestUC suggestin.Usecase) analyticsout.SuggestionProvider {
	if cfg.Suggest.Plugin == "none" {
		return nil
	}
	return analyticsoutadapter.NewSuggestionAdapter(suggestUC, cfg.Suggest.Plugin)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Analytics, app.Config.User)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
