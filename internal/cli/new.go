package cli

import (
	"fmt"
	"os"

	"github.com/roboco-io/tablekit/internal/docfile"
	"github.com/roboco-io/tablekit/internal/ir"
	"github.com/roboco-io/tablekit/internal/table"
	"github.com/spf13/cobra"
)

var (
	newRows  int
	newCols  int
	newText  string
	newForce bool
)

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "표가 들어 있는 새 문서 생성",
	Long: `문단 하나와 그 뒤의 빈 표로 이루어진 새 문서를 생성합니다.

행/열 수를 지정하지 않으면 설정 파일의 table.default_rows,
table.default_columns 값을 사용합니다 (기본 1x2).
파일 형식은 확장자(.json, .yaml, .yml)로 결정됩니다.

예시:
  tablekit new doc.json
  tablekit new doc.yaml --rows 3 --cols 4 --text "회의록"`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().IntVarP(&newRows, "rows", "r", 0, "표 본문 행 수 (기본: 설정값)")
	newCmd.Flags().IntVarP(&newCols, "cols", "c", 0, "표 열 수 (기본: 설정값)")
	newCmd.Flags().StringVar(&newText, "text", "", "표 앞 문단의 내용")
	newCmd.Flags().BoolVarP(&newForce, "force", "f", false, "기존 파일 덮어쓰기")

	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	outputPath := args[0]

	if _, err := os.Stat(outputPath); err == nil && !newForce {
		return fmt.Errorf("파일이 이미 존재합니다: %s\n덮어쓰려면 --force 플래그를 사용하세요", outputPath)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	editor := newEditor(cmd, cfg)

	intro := ir.NewBlock(ir.Key(table.UUIDKeys{}.NewID()), ir.BlockTypeUnstyled, "", newText)
	tree, err := ir.NewTree(intro)
	if err != nil {
		return fmt.Errorf("문서 생성 실패: %w", err)
	}

	state := ir.CreateWithContent(tree).WithHistoryLimit(cfg.History.Limit)
	state = editor.InsertTable(state, newRows, newCols)

	if err := docfile.Save(outputPath, state); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}

	if !rootQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "문서 생성됨: %s (%d 블록)\n", outputPath, state.Tree().Len())
	}
	return nil
}
