package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bobinette/raddaran/clients"
	"github.com/bobinette/raddaran/errors"
	"github.com/bobinette/raddaran/paper"
	"github.com/bobinette/raddaran/paper/services"
)

var (
	serverURL string

	// paper flags
	paperQuery       string
	paperSort        string
	paperTitle       string
	paperAuthor      string
	paperCategory    string
	paperDescription string
	paperSections    map[string]string
	paperOutput      string
)

func init() {
	PaperCommand.PersistentFlags().StringVar(&serverURL, "server", envOr("RADDARAN_SERVER", "http://localhost:1705"), "url of the running session")

	ListPapersCommand.Flags().StringVarP(&paperQuery, "query", "q", "", "search term")
	ListPapersCommand.Flags().StringVar(&paperSort, "sort", "", "sort key: date, title or author")

	for _, cmd := range []*cobra.Command{&UploadPaperCommand, &GeneratePaperCommand, &EditPaperCommand} {
		cmd.Flags().StringVar(&paperTitle, "title", "", "title")
		cmd.Flags().StringVar(&paperAuthor, "author", "", "author")
		cmd.Flags().StringVar(&paperCategory, "category", "", "category")
	}
	UploadPaperCommand.Flags().StringVar(&paperDescription, "description", "", "description")
	EditPaperCommand.Flags().StringVar(&paperDescription, "description", "", "description")
	GeneratePaperCommand.Flags().StringToStringVar(&paperSections, "section", nil, "section content, e.g. --section Abstract=\"...\"")
	DownloadPaperCommand.Flags().StringVarP(&paperOutput, "output", "o", ".", "directory to write the file to")

	PaperCommand.AddCommand(&ListPapersCommand)
	PaperCommand.AddCommand(&UploadPaperCommand)
	PaperCommand.AddCommand(&GeneratePaperCommand)
	PaperCommand.AddCommand(&EditPaperCommand)
	PaperCommand.AddCommand(&DeletePaperCommand)
	PaperCommand.AddCommand(&DownloadPaperCommand)
	PaperCommand.AddCommand(&SharePaperCommand)

	RootCmd.AddCommand(&PaperCommand)
}

func paperClient() *clients.Client {
	return clients.NewClient(http.DefaultClient, serverURL)
}

func parseID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		logger.Fatalf("invalid id %q: %v", arg, err)
	}
	return id
}

func parseCategory(s string) paper.Category {
	category, err := paper.ParseCategory(s)
	if err != nil {
		logger.Fatal(err)
	}
	return category
}

func printPaper(cmd *cobra.Command, p paper.Paper) {
	cmd.Printf("%d\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.DateAdded, p.Title, p.Author, p.Category, p.FileName)
}

var PaperCommand = cobra.Command{
	Use:   "paper",
	Short: "Manage the papers of a running session",
	Long:  "Manage the papers of a session started with serve",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var ListPapersCommand = cobra.Command{
	Use:   "list",
	Short: "List the papers",
	Long:  "List the papers matching the search term, sorted",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := paperClient().ListPapers(paperQuery, paperSort)
		if err != nil {
			logger.Fatal(err)
		}

		for _, p := range res.Papers {
			printPaper(cmd, p)
		}
		for _, f := range res.Facets.Categories {
			cmd.Printf("# %s: %d\n", f.Term, f.Count)
		}
		cmd.Printf("%d papers\n", res.Total)
	},
}

var UploadPaperCommand = cobra.Command{
	Use:   "upload FILE",
	Short: "Upload a paper",
	Long:  "Upload a pdf, doc or docx file with its metadata",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			logger.Fatal("could not read file:", err)
		}

		p, err := paperClient().UploadPaper(services.UploadRequest{
			Title:       paperTitle,
			Author:      paperAuthor,
			Category:    parseCategory(paperCategory),
			Description: paperDescription,
			FileName:    filepath.Base(args[0]),
			Data:        data,
		})
		if err != nil {
			logger.Fatal(err)
		}
		printPaper(cmd, p)
	},
}

var GeneratePaperCommand = cobra.Command{
	Use:   "generate TEMPLATE",
	Short: "Generate a paper from a template",
	Long:  "Generate a paper from a template: research, review or technical",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := paperClient().GeneratePaper(services.GenerateRequest{
			Template: paper.TemplateKey(args[0]),
			Title:    paperTitle,
			Author:   paperAuthor,
			Category: parseCategory(paperCategory),
			Sections: paperSections,
		})
		if err != nil {
			logger.Fatal(err)
		}

		printPaper(cmd, p)
		for _, section := range p.Sections {
			cmd.Printf("%s: %s\n", section, p.Content[section])
		}
	},
}

var EditPaperCommand = cobra.Command{
	Use:   "edit ID",
	Short: "Edit the metadata of a paper",
	Long:  "Edit the metadata of a paper. Only the flags that are set change.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseID(args[0])

		var fields paper.Fields
		flags := cmd.Flags()
		if flags.Changed("title") {
			fields.Title = &paperTitle
		}
		if flags.Changed("author") {
			fields.Author = &paperAuthor
		}
		if flags.Changed("category") {
			category := parseCategory(paperCategory)
			fields.Category = &category
		}
		if flags.Changed("description") {
			fields.Description = &paperDescription
		}

		p, err := paperClient().UpdatePaper(id, fields)
		if err != nil {
			logger.Fatal(err)
		}
		printPaper(cmd, p)
	},
}

var DeletePaperCommand = cobra.Command{
	Use:   "delete ID...",
	Short: "Delete papers",
	Long:  "Delete papers by id",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := paperClient()
		for _, arg := range args {
			id := parseID(arg)
			err := client.DeletePaper(id)
			if errors.IsNotFound(err) {
				logger.Errorf("paper %d not found", id)
				continue
			} else if err != nil {
				logger.Fatal(err)
			}
			cmd.Printf("deleted %d\n", id)
		}
	},
}

var DownloadPaperCommand = cobra.Command{
	Use:   "download ID",
	Short: "Download the file of an uploaded paper",
	Long:  "Download the file of an uploaded paper, exactly as it was uploaded",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, err := paperClient().DownloadPaper(parseID(args[0]))
		if err != nil {
			logger.Fatal(err)
		}

		name := filepath.Join(paperOutput, filepath.Base(strings.TrimSpace(file.Name)))
		if err := os.WriteFile(name, file.Data, 0644); err != nil {
			logger.Fatal("could not write file:", err)
		}
		cmd.Printf("%s (%s, %d bytes)\n", name, file.ContentType, len(file.Data))
	},
}

var SharePaperCommand = cobra.Command{
	Use:   "share ID",
	Short: "Print the share link of a paper",
	Long:  "Print the share link of a paper",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		url, err := paperClient().SharePaper(parseID(args[0]))
		if err != nil {
			logger.Fatal(err)
		}
		cmd.Println(url)
	},
}
