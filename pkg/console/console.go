package console

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/diillson/campaign-attribution-go/internal/shared/types"
)

// Console é uma implementação do ConsoleInterface.
type Console struct {
	out   io.Writer
	quiet bool
}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewQuietConsole cria um Console que só mostra erros.
func NewQuietConsole() *Console {
	return &Console{out: io.Discard, quiet: true}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Fprint(c.out, a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	if c.quiet {
		return
	}
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	if c.quiet {
		return
	}
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.WithWriter(os.Stderr).Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	if c.quiet {
		return
	}
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	if c.quiet {
		return &statusHandle{}
	}
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela. Células ausentes ficam vazias.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(t.columns))
	for i, cell := range cells {
		if i >= len(processedCells) {
			break
		}
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	tableData = append(tableData, t.rows...)

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithRightAlignment().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}
