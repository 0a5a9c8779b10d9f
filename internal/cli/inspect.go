package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/roboco-io/tablekit/internal/docfile"
	"github.com/roboco-io/tablekit/internal/ir"
	"github.com/roboco-io/tablekit/internal/table"
	"github.com/spf13/cobra"
)

var inspectBlocks bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "문서의 표 구조 요약",
	Long: `문서에 들어 있는 표의 크기와 머리글 여부, 현재 커서 위치를 표시합니다.
--blocks 플래그를 사용하면 모든 블록을 순서대로 나열합니다.

예시:
  tablekit inspect doc.json
  tablekit inspect doc.json --blocks`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectBlocks, "blocks", false, "모든 블록 나열")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	state, err := docfile.Load(args[0], docOptions(cfg))
	if err != nil {
		return fmt.Errorf("문서 로드 실패: %w", err)
	}
	tree := state.Tree()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "표\t키\t행\t열\t머리글")
	fmt.Fprintln(w, "--\t--\t--\t--\t------")
	for i, key := range table.Tables(tree) {
		m, err := table.Snapshot(tree, key)
		if err != nil {
			fmt.Fprintf(w, "%d\t%s\t-\t-\t(손상됨: %v)\n", i, key, err)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", i, key, len(m.BodyRows()), m.Cols, yesNo(m.HasHeader))
	}

	if inspectBlocks {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "#\t키\t유형\t상위\t내용")
		for i, b := range tree.Blocks() {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%q\n", i, b.Key, b.Type, b.ParentKey, b.Text)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n커서: %s\n", describeCaret(state))
	return nil
}

func describeCaret(state *ir.EditorState) string {
	sel := state.Selection()
	anchor, ok, err := table.AnchorFromEditor(state)
	switch {
	case err != nil:
		return fmt.Sprintf("%s (손상된 표: %v)", sel.StartKey(), err)
	case !ok:
		return fmt.Sprintf("%s:%d (표 밖)", sel.StartKey(), sel.StartOffset())
	}
	return fmt.Sprintf("표 %s, 행 %d, 열 %d, 위치 %d", anchor.TableKey, anchor.Row, anchor.Column, anchor.Offset)
}

func yesNo(b bool) string {
	if b {
		return "예"
	}
	return "아니오"
}
