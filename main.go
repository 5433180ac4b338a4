package main

import "github.com/umvarma/gonastran/cmd"

func main() {
	cmd.Execute()
}
