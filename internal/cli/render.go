package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/roboco-io/tablekit/internal/config"
	"github.com/roboco-io/tablekit/internal/docfile"
	"github.com/roboco-io/tablekit/internal/render"
	"github.com/spf13/cobra"
)

var (
	renderOutput string
	renderFormat string
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "문서를 Markdown, 텍스트 또는 HTML로 출력",
	Long: `문서를 읽어 Markdown, 일반 텍스트 또는 HTML로 출력합니다.

출력 형식 우선순위: --format 플래그, TABLEKIT_FORMAT 환경 변수,
설정 파일의 output.format, 기본값 markdown.

예시:
  tablekit render doc.json
  tablekit render doc.yaml --format html -o doc.html`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "출력 형식 (markdown, text, html)")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name := renderFormat
	if name == "" {
		name = config.GetEnvOrDefault("TABLEKIT_FORMAT", string(cfg.OutputFormat()))
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return err
	}

	state, err := docfile.Load(inputPath, docOptions(cfg))
	if err != nil {
		return fmt.Errorf("문서 로드 실패: %w", err)
	}
	logf(cmd, "입력 파일: %s (%d 블록), 출력 형식: %s\n", inputPath, state.Tree().Len(), format)

	var buf bytes.Buffer
	if err := render.Render(&buf, state.Tree(), format); err != nil {
		return fmt.Errorf("출력 변환 실패: %w", err)
	}

	if renderOutput == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(renderOutput, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	if !rootQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "변환 완료: %s\n", renderOutput)
	}
	return nil
}
