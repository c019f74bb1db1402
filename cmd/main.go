package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/zooyer/cadimport"
	"github.com/zooyer/cadimport/config"
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/preview"
	"github.com/zooyer/golib/xos"
)

const (
	islandGap = 20 // 图形间距不超过则认为是同一组，单位与图纸一致
)

type flags struct {
	config string
	svg    string
	csv    string
	width  int
	gap    float64
	gui    bool
	dump   bool
}

// pick 未指定文件时弹出选择框
func pick() (string, error) {
	var patterns []string
	for _, ext := range cadimport.Formats() {
		patterns = append(patterns, "*"+ext)
	}

	return zenity.SelectFile(
		zenity.Title("选择要导入的文件"),
		zenity.FileFilters{
			{Name: "CAD 文件", Patterns: patterns},
		},
	)
}

// terminalProgress 在终端同一行刷新进度
func terminalProgress(percent int) {
	fmt.Printf("\r加载中: %3d%%", percent)
	if percent >= 100 {
		fmt.Println()
	}
}

// dialogProgress 把进度转发到对话框
func dialogProgress(dlg zenity.ProgressDialog) core.Progress {
	return func(percent int) {
		_ = dlg.Value(percent)
		if percent >= 100 {
			_ = dlg.Complete()
		}
	}
}

func writeSVG(filename string, model *cadimport.Model, width int) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(core.ErrIO, err.Error())
	}
	defer func() {
		if e := file.Close(); e != nil && err == nil {
			err = errors.Wrap(core.ErrIO, e.Error())
		}
	}()

	if model.Drawing != nil {
		return preview.Drawing(file, model.Drawing, width)
	}
	return preview.Mesh(file, model.Objects, width)
}

func run(f flags, args []string) error {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return err
		}
	}

	if f.dump {
		return cfg.Encode(os.Stdout)
	}

	var filename string
	if len(args) > 0 {
		filename = args[0]
	} else {
		var err error
		if filename, err = pick(); err != nil {
			if errors.Is(err, zenity.ErrCanceled) {
				fmt.Println("未选择文件")
				return nil
			}
			return err
		}
	}

	var progress core.Progress = terminalProgress
	if f.gui {
		dlg, err := zenity.Progress(zenity.Title("导入 " + filepath.Base(filename)))
		if err != nil {
			return err
		}
		defer dlg.Close()
		progress = dialogProgress(dlg)
	}

	fmt.Println("开始处理:", filename)
	model, err := cadimport.Open(filename, cfg, progress)
	if err != nil {
		return err
	}

	summary(os.Stdout, model, cfg.DXF)
	fmt.Println()

	// 1. 按组输出范围
	var list = rows(model, f.gap)
	for _, row := range list {
		fmt.Printf("[%s] | RECTANG %.2f,%.2f %.2f,%.2f | 图形=%d 面=%d 边=%s\n",
			row.Name, row.Box.Min.X, row.Box.Min.Y, row.Box.Max.X, row.Box.Max.Y,
			row.Shapes, row.Faces, renderBool(row.Edges > 0),
		)
	}

	// 2. 写入表格
	var csv = f.csv
	if csv == "" {
		csv = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".csv"
	}
	if err = writeCSV(csv, list); err != nil {
		return errors.Wrap(core.ErrIO, err.Error())
	}
	fmt.Println("写入文件:", csv)

	// 3. 预览
	if f.svg != "" {
		if err = writeSVG(f.svg, model, f.width); err != nil {
			return err
		}
		fmt.Println("写入预览:", f.svg)
	}

	return nil
}

func command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "cadimport [file]",
		Short:         "导入 DXF/STL/ASC 文件并输出范围报表",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f, args)
		},
	}

	cmd.Flags().StringVarP(&f.config, "config", "c", "", "TOML 配置文件")
	cmd.Flags().StringVar(&f.svg, "svg", "", "输出 SVG 预览")
	cmd.Flags().StringVar(&f.csv, "csv", "", "输出报表，默认与输入文件同名")
	cmd.Flags().IntVar(&f.width, "width", 1024, "预览宽度(像素)")
	cmd.Flags().Float64Var(&f.gap, "gap", islandGap, "分组间距")
	cmd.Flags().BoolVar(&f.gui, "gui", false, "显示进度对话框")
	cmd.Flags().BoolVar(&f.dump, "dump-config", false, "输出当前配置后退出")

	return cmd
}

func main() {
	// 拖入文件或双击启动时保留窗口
	if len(os.Args) <= 2 {
		defer xos.PauseExit()
	}

	if err := command().Execute(); err != nil {
		fmt.Println("处理失败:", err)
	}
}
