package csvio_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/SathemBite/tx-engine-example/txengine/csvio"
	"github.com/SathemBite/tx-engine-example/txengine/ledger"
)

func ExampleReader_Next() {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,5.0\n" +
		"withdrawal,1,2,1.5\n" +
		"dispute,1,1,\n" +
		"resolve,1,1,\n"

	reader, err := csvio.NewReader(strings.NewReader(input))
	if err != nil {
		fmt.Println(err)
		return
	}

	engine := ledger.New()

	for {
		tx, err := reader.Next()
		if err != nil {
			break
		}

		_ = engine.Apply(tx)
	}

	_ = csvio.NewWriter(os.Stdout).WriteSnapshot(engine.Snapshot())

	// Output:
	// client,available,held,total,locked
	// 1,3.5000,0.0000,3.5000,false
}
