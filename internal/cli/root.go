// Package cli implements the tablekit command-line interface.
package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/roboco-io/tablekit/internal/config"
	"github.com/roboco-io/tablekit/internal/docfile"
	"github.com/roboco-io/tablekit/internal/table"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	rootVerbose    bool
	rootQuiet      bool
	rootConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "tablekit",
	Short: "블록 문서의 표 편집 도구",
	Long: `tablekit은 블록 단위 문서(JSON/YAML) 안의 표를 편집합니다.

표는 table → table-header/table-body → table-row → table-cell 블록으로
저장되며, 행/열 삽입과 삭제, 정렬, 행 이동을 명령으로 적용할 수 있습니다.

환경 변수:
  TABLEKIT_VERBOSE=true   상세 출력
  TABLEKIT_FORMAT=xxx     render 기본 출력 형식 (markdown, text, html)

예시:
  tablekit new doc.json --rows 2 --cols 3
  tablekit edit doc.json insert-row --row 1 --col 0
  tablekit render doc.json --format html`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tablekit %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "상세 출력")
	rootCmd.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false, "조용한 모드")
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "설정 파일 경로 (기본: ~/.tablekit/config.yaml)")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func verbose() bool {
	return !rootQuiet && (rootVerbose || config.GetEnvBool("TABLEKIT_VERBOSE"))
}

func newLoader() (*config.Loader, error) {
	if rootConfigPath != "" {
		return config.NewLoaderWithPath(rootConfigPath), nil
	}
	return config.NewLoader()
}

func loadConfig() (*config.Config, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("설정 로드 실패: %w", err)
	}
	return cfg, nil
}

// newEditor returns an editor configured by cfg. Aborted operations are
// logged to stderr in verbose mode.
func newEditor(cmd *cobra.Command, cfg *config.Config) *table.Editor {
	opts := cfg.EditorOptions()
	if verbose() {
		opts.Logger = log.New(cmd.ErrOrStderr(), "tablekit: ", 0)
	} else {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return table.NewEditor(opts)
}

func docOptions(cfg *config.Config) docfile.Options {
	opts := docfile.DefaultOptions()
	if cfg.History.Limit > 0 {
		opts.HistoryLimit = cfg.History.Limit
	}
	return opts
}

func logf(cmd *cobra.Command, format string, args ...any) {
	if verbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), format, args...)
	}
}
