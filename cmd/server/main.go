package main

import "github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/app/server"

func main() {
	server.Run()
}
