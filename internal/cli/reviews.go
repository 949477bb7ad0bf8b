package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"rateit/internal/models"
	"rateit/internal/client"

	"github.com/spf13/cobra"
)

func (a *app) reviewsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Browse and post reviews",
	}
	cmd.AddCommand(a.reviewsListCommand(), a.reviewsSubmitCommand())
	return cmd
}

func (a *app) reviewsListCommand() *cobra.Command {
	var (
		filter    models.ReviewFilter
		minRating int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("min-rating") {
				filter.MinRating = models.AtLeast(minRating)
			}
			reviews, err := a.client(ctx).ListReviews(ctx, filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(reviews) == 0 {
				fmt.Fprintln(out, "No reviews yet.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCATEGORY\tRATING\tMEDIA\tCAPTION")
			for _, r := range reviews {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.ItemType, stars(r.Rating), len(r.Media), r.Caption)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&filter.Category, "category", "", "only this category")
	cmd.Flags().StringVar(&filter.UserID, "user", "", "only reviews by this user ID")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "text to look for in captions and keywords")
	cmd.Flags().IntVar(&minRating, "min-rating", 0, "lowest rating to show (0-5)")
	return cmd
}

func (a *app) reviewsSubmitCommand() *cobra.Command {
	var in client.ReviewInput

	cmd := &cobra.Command{
		Use:   "submit FILE...",
		Short: "Post a review with one or more photos or videos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Anonymous submissions fall back to the server's placeholder user.
			if user, err := a.session.Get(ctx); err == nil && user != nil {
				in.UserID = user.ID
			}

			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()

				in.Media = append(in.Media, client.MediaFile{
					Filename:    filepath.Base(path),
					ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
					Body:        f,
				})
			}

			review, err := a.client(ctx).SubmitReview(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Posted review %s with %d media file(s).\n", review.ID, len(review.Media))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Caption, "caption", "", "caption")
	cmd.Flags().IntVar(&in.Rating, "rating", 0, "rating from 0 to 5")
	cmd.Flags().StringVar(&in.Category, "category", models.DefaultCategory, "category, e.g. coffee_shops")
	cmd.Flags().StringVar(&in.ItemID, "item", "", "ID of the reviewed item")
	cmd.Flags().StringArrayVar(&in.Keywords, "keyword", nil, "keyword, repeatable (kept for the other category)")
	return cmd
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		return fmt.Sprintf("%d", rating)
	}
	return strings.Repeat("*", rating) + strings.Repeat(".", 5-rating)
}
