package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roboco-io/tablekit/internal/command"
	"github.com/roboco-io/tablekit/internal/docfile"
	"github.com/roboco-io/tablekit/internal/ir"
	"github.com/roboco-io/tablekit/internal/table"
	"github.com/spf13/cobra"
)

var (
	editOutput string
	editTable  int
	editRow    int
	editCol    int
	editOffset int
)

var editCmd = &cobra.Command{
	Use:   "edit <file> <operation>...",
	Short: "문서의 표에 편집 명령 적용",
	Long: `문서를 읽어 편집 명령을 차례로 적용하고 저장합니다.

--row를 지정하면 --table 번째 표의 (행, 열) 셀로 커서를 옮긴 뒤
명령을 적용합니다. 행 0은 머리글 행이고 본문 행은 1부터 시작합니다.
--row를 지정하지 않으면 저장된 커서 위치를 사용합니다.

명령:
  insert-table, insert-row, remove-row, insert-column, remove-column,
  remove-table, align-left, align-center, align-right,
  move-up, move-down, undo, redo

예시:
  tablekit edit doc.json insert-row --row 1 --col 0
  tablekit edit doc.json insert-column align-center --row 0 --col 1
  tablekit edit doc.json remove-table -o trimmed.json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editOutput, "output", "o", "", "출력 파일 경로 (기본: 입력 파일 덮어쓰기)")
	editCmd.Flags().IntVar(&editTable, "table", 0, "대상 표 순번 (0부터)")
	editCmd.Flags().IntVar(&editRow, "row", -1, "커서 행 (0: 머리글)")
	editCmd.Flags().IntVar(&editCol, "col", 0, "커서 열")
	editCmd.Flags().IntVar(&editOffset, "offset", 0, "셀 안 커서 위치 (문자 단위)")

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	inputPath, ops := args[0], args[1:]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state, err := docfile.Load(inputPath, docOptions(cfg))
	if err != nil {
		return fmt.Errorf("문서 로드 실패: %w", err)
	}

	if editRow >= 0 {
		state, err = placeCaret(state, editTable, editRow, editCol, editOffset)
		if err != nil {
			return err
		}
	}

	registry := command.NewRegistry()
	command.RegisterBuiltins(registry, newEditor(cmd, cfg))

	before := state.Tree()
	state, err = registry.Sequence(state, ops...)
	if err != nil {
		var unknown *command.UnknownOperationError
		if errors.As(err, &unknown) {
			return fmt.Errorf("알 수 없는 명령: %s\n지원하는 명령: %s", unknown.Name, strings.Join(registry.Names(), ", "))
		}
		return fmt.Errorf("명령 적용 실패: %w", err)
	}
	logf(cmd, "명령 %d개 적용: %d → %d 블록\n", len(ops), before.Len(), state.Tree().Len())

	outputPath := editOutput
	if outputPath == "" {
		outputPath = inputPath
	}
	if err := docfile.Save(outputPath, state); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}

	if !rootQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "편집 완료: %s\n", outputPath)
	}
	return nil
}

// placeCaret moves the caret of state to the given cell of the n-th table.
func placeCaret(state *ir.EditorState, n, row, col, offset int) (*ir.EditorState, error) {
	tables := table.Tables(state.Tree())
	if n < 0 || n >= len(tables) {
		return nil, fmt.Errorf("표를 찾을 수 없습니다: %d (문서의 표: %d개)", n, len(tables))
	}

	anchor := table.Anchor{TableKey: tables[n], Row: row, Column: col, Offset: offset}
	sel, ok := anchor.ToSelection(state.Tree())
	if !ok {
		return nil, fmt.Errorf("셀을 찾을 수 없습니다: 행 %d, 열 %d", row, col)
	}
	return state.AcceptSelection(sel), nil
}
