package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

const (
	apiLogin      = "/api/login"
	apiLogout     = "/api/logout"
	apiMe         = "/api/me"
	apiSightings  = "/api/sightings"
	apiGeo        = "/api/sightings/geo"
	apiReclassify = "/api/sightings/reclassify"
)

var (
	version   string
	buildDate string
)

// repl runs the interactive shell loop, accepting commands to browse
// and reclassify sightings.
func repl(client *http.Client, baseURL string) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("florasight> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login <email> <password>, list [species], geo, sure <id>, unsure <id>, whoami, logout, exit")
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			body, _ := json.Marshal(map[string]string{"email": args[1], "password": args[2]})
			printResponse(client.Post(baseURL+apiLogin, "application/json", bytes.NewReader(body)))
		case "list":
			u := baseURL + apiSightings
			if len(args) > 1 {
				u += "?species=" + url.QueryEscape(args[1])
			}
			printResponse(client.Get(u))
		case "geo":
			printResponse(client.Get(baseURL + apiGeo))
		case "sure", "unsure":
			if len(args) < 2 {
				fmt.Printf("Usage: %s <id>\n", args[0])
				continue
			}
			body, _ := json.Marshal(map[string]string{"id": args[1], "action": args[0]})
			printResponse(client.Post(baseURL+apiReclassify, "application/json", bytes.NewReader(body)))
		case "whoami":
			printResponse(client.Get(baseURL + apiMe))
		case "logout":
			printResponse(client.Post(baseURL+apiLogout, "application/json", nil))
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// printResponse dumps a response body, pretty-printing JSON when it can.
func printResponse(resp *http.Response, err error) {
	if err != nil {
		fmt.Println("request failed:", err)
		return
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Println("read response:", err)
		return
	}
	var pretty bytes.Buffer
	if json.Indent(&pretty, body, "", "  ") == nil {
		fmt.Println(pretty.String())
		return
	}
	fmt.Printf("[%d] %s\n", resp.StatusCode, strings.TrimSpace(string(body)))
}

// main parses command-line flags and starts the interactive shell.
func main() {
	var (
		baseURL string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("FloraSight Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	repl(http.DefaultClient, baseURL)
}
