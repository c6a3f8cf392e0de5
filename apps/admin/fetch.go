package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trezcool/mahafali/core/table"
)

func (cli *commandLine) fetch(name, fields string) error {
	req, err := table.NewRequest(table.Name(name), splitList(fields)...)
	if err != nil {
		return err
	}

	rows, err := cli.fetcher.BulkFetch(context.Background(), []table.Request{req})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(rows.Table(req.Table), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
