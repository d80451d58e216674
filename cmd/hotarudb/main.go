package main

import (
	"fmt"
	"strings"

	"hotarudb/catalog"
	"hotarudb/config"
	"hotarudb/executor"
	"hotarudb/parser"
	"hotarudb/planner"
	"hotarudb/storage"

	"github.com/chzyer/readline"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	ct, err := catalog.LoadCatalog(cfg.CatalogDir, cfg.DataDir)
	if err != nil {
		panic(err)
	}
	dm := storage.NewDiskManager(cfg.DataDir)

	rl, err := readline.New("hotarudb > ")
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // EOF ends the session
			break
		}
		if line == "exit" {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		rl.SaveHistory(line)

		if err := Execute(ct, dm, line); err != nil {
			fmt.Println(err)
		}
	}

	fmt.Println("Bye!")
}

func Execute(ct *catalog.Catalog, dm *storage.DiskManager, sqlString string) error {
	ps := parser.NewSimpleParser()
	stmt, err := ps.Parse(sqlString)
	if err != nil {
		return err
	}

	sp := planner.NewSimplePlanner(ct)
	plan, err := sp.MakePlan(stmt)
	if err != nil {
		return err
	}

	ex := executor.NewSimpleExecutor(ct, dm)
	rs, err := ex.Execute(plan)
	if err != nil {
		return err
	}

	printResultSet(rs)
	return nil
}

func printResultSet(rs *executor.ResultSet) {
	columnWidths := make([]int, len(rs.Header))
	for i, header := range rs.Header {
		columnWidths[i] = len(header)
	}

	for _, row := range rs.Rows {
		for i, cell := range row {
			columnWidths[i] = max(columnWidths[i], len(cell))
		}
	}

	headerParts := make([]string, len(rs.Header))
	for i, header := range rs.Header {
		headerParts[i] = fmt.Sprintf("%-*s", columnWidths[i], header)
	}
	if len(rs.Header) > 0 {
		fmt.Println(strings.Join(headerParts, " | "))
	}

	separatorParts := make([]string, len(rs.Header))
	for i, width := range columnWidths {
		separatorParts[i] = strings.Repeat("-", width)
	}
	if len(rs.Header) > 0 {
		fmt.Println(strings.Join(separatorParts, "-+-"))
	}

	for _, row := range rs.Rows {
		rowParts := make([]string, len(row))
		for i, cell := range row {
			rowParts[i] = fmt.Sprintf("%-*s", columnWidths[i], cell)
		}
		fmt.Println(strings.Join(rowParts, " | "))
	}

	if rs.Message != "" {
		fmt.Println(rs.Message)
	}
	fmt.Println()
}
