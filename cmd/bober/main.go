package main

import (
	"flag"
	"fmt"
	"github.com/jypelle/boberplayer/apimodel"
	"github.com/jypelle/boberplayer/internal/config"
	"github.com/jypelle/boberplayer/internal/version"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const configSuffix = "boberplayer"

func main() {

	// Logger
	logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	mainCommand := filepath.Base(os.Args[0])

	// region Flags and Commands definition

	// Debug Mode
	debugMode := flag.Bool("d", false, "Enable debug mode")

	// User config dir
	defaultConfigDir := "./." + configSuffix
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		defaultConfigDir = filepath.Join(userConfigDir, configSuffix)
	}
	configDir := flag.String("c", defaultConfigDir, "Location of boberplayer config folder")

	// Usage
	flag.Usage = func() {
		fmt.Printf("\nUsage: %s [OPTIONS] [COMMAND]\n", mainCommand)
		fmt.Printf("\nInspect boberplayer library documents\n")
		fmt.Printf("\nOptions:\n")
		flag.PrintDefaults()
		fmt.Printf("\nCommands:\n")
		fmt.Printf("  check            Validate a library document\n")
		fmt.Printf("  list             Show the content of a library document\n")
		fmt.Printf("  convert          Convert a library document between json and yaml\n")
		fmt.Printf("  add-song         Add a song to a library document\n")
		fmt.Printf("  add-playlist     Add an empty playlist to a library document\n")
		fmt.Printf("  add-to-playlist  Append a song to a playlist\n")
		fmt.Printf("  server           Add, modify or remove a server\n")
		fmt.Printf("  version          Show the version number\n")
		fmt.Printf("\nRun '%s COMMAND --help' for more information on a command.\n", mainCommand)
	}

	// check command
	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)

	checkCmd.Usage = func() {
		fmt.Printf("\nUsage: %s check [FILE]\n", mainCommand)
		fmt.Printf("\nValidate a library document, the configured library by default\n")
	}

	// list command
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	listCmd.Usage = func() {
		fmt.Printf("\nUsage: %s list [FILE]\n", mainCommand)
		fmt.Printf("\nShow songs, playlists, servers and queue of a library document\n")
	}

	// convert command
	convertCmd := flag.NewFlagSet("convert", flag.ExitOnError)

	convertCmd.Usage = func() {
		fmt.Printf("\nUsage: %s convert INPUT [OUTPUT]\n", mainCommand)
		fmt.Printf("\nConvert a library document, formats follow the file extensions.\n")
		fmt.Printf("Without OUTPUT, the document is written to stdout in the configured format.\n")
	}

	// add-song command
	addSongCmd := flag.NewFlagSet("add-song", flag.ExitOnError)
	addSongLibrary := addSongCmd.String("l", "", "Library document, the configured library by default")
	addSongAlbum := addSongCmd.String("album", "", "Album of the song")
	addSongAuthor := addSongCmd.String("author", "", "Author of the song")

	addSongCmd.Usage = func() {
		fmt.Printf("\nUsage: %s add-song [OPTIONS] NAME PATH\n", mainCommand)
		fmt.Printf("\nAdd a song to a library document\n")
		fmt.Printf("\nOptions:\n")
		addSongCmd.PrintDefaults()
	}

	// add-playlist command
	addPlaylistCmd := flag.NewFlagSet("add-playlist", flag.ExitOnError)
	addPlaylistLibrary := addPlaylistCmd.String("l", "", "Library document, the configured library by default")
	addPlaylistDesc := addPlaylistCmd.String("desc", "", "Description of the playlist")

	addPlaylistCmd.Usage = func() {
		fmt.Printf("\nUsage: %s add-playlist [OPTIONS] NAME\n", mainCommand)
		fmt.Printf("\nAdd an empty playlist to a library document\n")
		fmt.Printf("\nOptions:\n")
		addPlaylistCmd.PrintDefaults()
	}

	// add-to-playlist command
	addToPlaylistCmd := flag.NewFlagSet("add-to-playlist", flag.ExitOnError)
	addToPlaylistLibrary := addToPlaylistCmd.String("l", "", "Library document, the configured library by default")

	addToPlaylistCmd.Usage = func() {
		fmt.Printf("\nUsage: %s add-to-playlist [OPTIONS] PLAYLIST_ID SONG_ID\n", mainCommand)
		fmt.Printf("\nAppend a known song to a playlist\n")
		fmt.Printf("\nOptions:\n")
		addToPlaylistCmd.PrintDefaults()
	}

	// server command
	serverCmd := flag.NewFlagSet("server", flag.ExitOnError)
	serverLibrary := serverCmd.String("l", "", "Library document, the configured library by default")

	serverCmd.Usage = func() {
		fmt.Printf("\nUsage: %s server [OPTIONS] add NAME IP\n", mainCommand)
		fmt.Printf("       %s server [OPTIONS] mod OLD_NAME NAME IP\n", mainCommand)
		fmt.Printf("       %s server [OPTIONS] rm NAME\n", mainCommand)
		fmt.Printf("\nManage the servers of a library document\n")
		fmt.Printf("\nOptions:\n")
		serverCmd.PrintDefaults()
	}

	// version command
	versionCmd := flag.NewFlagSet("version", flag.ExitOnError)

	versionCmd.Usage = func() {
		fmt.Printf("\nUsage: %s version\n", mainCommand)
		fmt.Printf("\nShow the version information\n")
	}

	// endregion

	// region Flags and Commands Parsing
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	switch flag.Arg(0) {
	case "check":
		checkCmd.Parse(flag.Args()[1:])
		if checkCmd.NArg() > 1 {
			fmt.Printf("\n\"%s %s\" accepts at most one argument\n", mainCommand, flag.Arg(0))
			checkCmd.Usage()
			os.Exit(1)
		}
	case "list":
		listCmd.Parse(flag.Args()[1:])
		if listCmd.NArg() > 1 {
			fmt.Printf("\n\"%s %s\" accepts at most one argument\n", mainCommand, flag.Arg(0))
			listCmd.Usage()
			os.Exit(1)
		}
	case "convert":
		convertCmd.Parse(flag.Args()[1:])
		if convertCmd.NArg() < 1 || convertCmd.NArg() > 2 {
			fmt.Printf("\n\"%s %s\" requires an input and an optional output\n", mainCommand, flag.Arg(0))
			convertCmd.Usage()
			os.Exit(1)
		}
	case "add-song":
		addSongCmd.Parse(flag.Args()[1:])
		if addSongCmd.NArg() != 2 {
			fmt.Printf("\n\"%s %s\" requires a name and a path\n", mainCommand, flag.Arg(0))
			addSongCmd.Usage()
			os.Exit(1)
		}
	case "add-playlist":
		addPlaylistCmd.Parse(flag.Args()[1:])
		if addPlaylistCmd.NArg() != 1 {
			fmt.Printf("\n\"%s %s\" requires a name\n", mainCommand, flag.Arg(0))
			addPlaylistCmd.Usage()
			os.Exit(1)
		}
	case "add-to-playlist":
		addToPlaylistCmd.Parse(flag.Args()[1:])
		if addToPlaylistCmd.NArg() != 2 {
			fmt.Printf("\n\"%s %s\" requires a playlist id and a song id\n", mainCommand, flag.Arg(0))
			addToPlaylistCmd.Usage()
			os.Exit(1)
		}
	case "server":
		serverCmd.Parse(flag.Args()[1:])
		expected := map[string]int{"add": 3, "mod": 4, "rm": 2}[serverCmd.Arg(0)]
		if expected == 0 || serverCmd.NArg() != expected {
			fmt.Printf("\n\"%s %s\" requires add, mod or rm with their arguments\n", mainCommand, flag.Arg(0))
			serverCmd.Usage()
			os.Exit(1)
		}
	case "version":
		versionCmd.Parse(flag.Args()[1:])
		if versionCmd.NArg() > 0 {
			fmt.Printf("\n\"%s %s\" accepts no arguments\n", mainCommand, flag.Arg(0))
			versionCmd.Usage()
			os.Exit(1)
		}
	default:
		fmt.Printf("\n%s is not a boberplayer command\n", flag.Args()[0])
		flag.Usage()
		os.Exit(1)
	}
	// endregion

	if versionCmd.Parsed() {
		fmt.Printf("Version %s\n", version.AppVersion.BuildInfo())
		return
	}

	cfg, err := config.NewConfig(*configDir, *debugMode)
	if err != nil {
		logrus.Fatalf("Unable to load configuration: %v", err)
	}

	level, err := cfg.LogrusLevel()
	if err != nil {
		logrus.Warnf("Unknown log level %q, keeping %s", cfg.LogLevel, logrus.GetLevel())
	} else {
		logrus.SetLevel(level)
	}
	if *debugMode {
		logrus.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true, TimestampFormat: time.RFC3339Nano})
		logrus.Printf("Debug mode activated")
	}

	app := NewCliApp(cfg, os.Stdout)

	switch {
	case checkCmd.Parsed():
		err = app.Check(checkCmd.Arg(0))
	case listCmd.Parsed():
		err = app.List(listCmd.Arg(0))
	case convertCmd.Parsed():
		err = app.Convert(convertCmd.Arg(0), convertCmd.Arg(1))
	case addSongCmd.Parsed():
		err = app.AddSong(*addSongLibrary, addSongCmd.Arg(0), addSongCmd.Arg(1), lo.EmptyableToPtr(*addSongAlbum), lo.EmptyableToPtr(*addSongAuthor))
	case addPlaylistCmd.Parsed():
		err = app.AddPlaylist(*addPlaylistLibrary, addPlaylistCmd.Arg(0), lo.EmptyableToPtr(*addPlaylistDesc))
	case addToPlaylistCmd.Parsed():
		var playlistId, songId int64
		if playlistId, err = strconv.ParseInt(addToPlaylistCmd.Arg(0), 10, 64); err != nil {
			logrus.Errorf("Invalid playlist id %q", addToPlaylistCmd.Arg(0))
			break
		}
		if songId, err = strconv.ParseInt(addToPlaylistCmd.Arg(1), 10, 64); err != nil {
			logrus.Errorf("Invalid song id %q", addToPlaylistCmd.Arg(1))
			break
		}
		err = app.AddSongToPlaylist(*addToPlaylistLibrary, apimodel.PlaylistId(playlistId), apimodel.SongId(songId))
	case serverCmd.Parsed():
		switch serverCmd.Arg(0) {
		case "add":
			err = app.AddServer(*serverLibrary, serverCmd.Arg(1), serverCmd.Arg(2))
		case "mod":
			err = app.ModifyServer(*serverLibrary, serverCmd.Arg(1), serverCmd.Arg(2), serverCmd.Arg(3))
		case "rm":
			err = app.RemoveServer(*serverLibrary, serverCmd.Arg(1))
		}
	}

	if err != nil {
		logrus.Errorf("%s failed", flag.Arg(0))
		os.Exit(1)
	}
}
